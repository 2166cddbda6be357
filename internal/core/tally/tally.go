// Package tally ranks candidates and computes vote shares and turnout.
// Everything here is pure; the caller supplies counts read from the store.
package tally

import "sort"

// Count is one candidate's standing as read from the store.
// Ballots is authoritative; Counter is the denormalized tally kept on the candidate row.
type Count struct {
	CandidateID int64
	Name        string
	Position    string
	Ballots     int
	Counter     int
}

// Standing is a ranked result row.
type Standing struct {
	Rank        int
	CandidateID int64
	Name        string
	Position    string
	Votes       int
	Percentage  float64
}

// Mismatch records a candidate whose counter disagrees with its ballots.
type Mismatch struct {
	CandidateID int64
	Counter     int
	Ballots     int
}

// Outcome is the ranked result of an election.
type Outcome struct {
	Standings      []Standing
	TotalVotes     int
	DistinctVoters int
	EligibleVoters int
	Turnout        float64
	Mismatches     []Mismatch
}

// Rank orders counts by votes descending then candidate id ascending and
// assigns positional ranks starting at 1. Tied candidates get distinct ranks.
// The input slice is not modified.
func Rank(counts []Count, distinctVoters, eligibleVoters int) Outcome {
	sorted := make([]Count, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Ballots != sorted[j].Ballots {
			return sorted[i].Ballots > sorted[j].Ballots
		}
		return sorted[i].CandidateID < sorted[j].CandidateID
	})

	total := 0
	for _, c := range sorted {
		total += c.Ballots
	}

	out := Outcome{
		Standings:      make([]Standing, len(sorted)),
		TotalVotes:     total,
		DistinctVoters: distinctVoters,
		EligibleVoters: eligibleVoters,
		Turnout:        Percentage(distinctVoters, eligibleVoters),
	}
	for i, c := range sorted {
		out.Standings[i] = Standing{
			Rank:        i + 1,
			CandidateID: c.CandidateID,
			Name:        c.Name,
			Position:    c.Position,
			Votes:       c.Ballots,
			Percentage:  Percentage(c.Ballots, total),
		}
	}
	out.Mismatches = Verify(sorted)
	return out
}

// Verify lists the candidates whose counter differs from their ballot count.
func Verify(counts []Count) []Mismatch {
	var mismatches []Mismatch
	for _, c := range counts {
		if c.Counter != c.Ballots {
			mismatches = append(mismatches, Mismatch{CandidateID: c.CandidateID, Counter: c.Counter, Ballots: c.Ballots})
		}
	}
	return mismatches
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Winners returns the leading standings, or nil when no votes were cast.
// More than one winner means the lead is tied.
func Winners(standings []Standing) []Standing {
	if len(standings) == 0 || standings[0].Votes == 0 {
		return nil
	}
	n := 1
	for n < len(standings) && standings[n].Votes == standings[0].Votes {
		n++
	}
	return standings[:n]
}
