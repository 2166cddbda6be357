package tally

import (
	"math"
	"testing"
)

func TestRank_OrdersByVotesThenID(t *testing.T) {
	counts := []Count{
		{CandidateID: 4, Name: "Dana", Ballots: 3, Counter: 3},
		{CandidateID: 2, Name: "Bo", Ballots: 5, Counter: 5},
		{CandidateID: 9, Name: "Ira", Ballots: 3, Counter: 3},
		{CandidateID: 1, Name: "Ada", Ballots: 3, Counter: 3},
	}

	out := Rank(counts, 14, 20)

	wantIDs := []int64{2, 1, 4, 9}
	if len(out.Standings) != len(wantIDs) {
		t.Fatalf("got %d standings, want %d", len(out.Standings), len(wantIDs))
	}
	for i, id := range wantIDs {
		s := out.Standings[i]
		if s.CandidateID != id {
			t.Errorf("standing %d: candidate = %d, want %d", i, s.CandidateID, id)
		}
		if s.Rank != i+1 {
			t.Errorf("standing %d: rank = %d, want %d", i, s.Rank, i+1)
		}
	}
	if out.TotalVotes != 14 {
		t.Errorf("TotalVotes = %d, want 14", out.TotalVotes)
	}
	if counts[0].CandidateID != 4 {
		t.Error("Rank reordered its input")
	}
}

func TestRank_Deterministic(t *testing.T) {
	a := []Count{{CandidateID: 3, Ballots: 1}, {CandidateID: 1, Ballots: 1}, {CandidateID: 2, Ballots: 1}}
	b := []Count{{CandidateID: 2, Ballots: 1}, {CandidateID: 3, Ballots: 1}, {CandidateID: 1, Ballots: 1}}

	ra, rb := Rank(a, 3, 3), Rank(b, 3, 3)
	for i := range ra.Standings {
		if ra.Standings[i] != rb.Standings[i] {
			t.Errorf("standing %d differs: %+v vs %+v", i, ra.Standings[i], rb.Standings[i])
		}
	}
}

func TestRank_ZeroBallots(t *testing.T) {
	out := Rank([]Count{{CandidateID: 1}, {CandidateID: 2}}, 0, 0)

	if out.TotalVotes != 0 {
		t.Errorf("TotalVotes = %d, want 0", out.TotalVotes)
	}
	for _, s := range out.Standings {
		if s.Votes != 0 || s.Percentage != 0 || math.IsNaN(s.Percentage) {
			t.Errorf("standing %+v, want zero votes and zero percentage", s)
		}
	}
	if out.Turnout != 0 || math.IsNaN(out.Turnout) {
		t.Errorf("Turnout = %v, want 0", out.Turnout)
	}
}

func TestRank_NoCandidates(t *testing.T) {
	out := Rank(nil, 0, 10)
	if len(out.Standings) != 0 {
		t.Errorf("got %d standings, want 0", len(out.Standings))
	}
	if out.Turnout != 0 {
		t.Errorf("Turnout = %v, want 0", out.Turnout)
	}
}

func TestRank_TwoVoterScenario(t *testing.T) {
	out := Rank([]Count{
		{CandidateID: 11, Name: "B", Ballots: 1, Counter: 1},
		{CandidateID: 10, Name: "A", Ballots: 1, Counter: 1},
	}, 2, 2)

	if out.Standings[0].Name != "A" || out.Standings[1].Name != "B" {
		t.Fatalf("order = %s,%s, want A,B", out.Standings[0].Name, out.Standings[1].Name)
	}
	for _, s := range out.Standings {
		if s.Percentage != 50 {
			t.Errorf("%s percentage = %v, want 50", s.Name, s.Percentage)
		}
	}
	if out.Turnout != 100 {
		t.Errorf("Turnout = %v, want 100", out.Turnout)
	}
}

func TestRank_ReportsCounterMismatch(t *testing.T) {
	out := Rank([]Count{
		{CandidateID: 1, Ballots: 2, Counter: 2},
		{CandidateID: 2, Ballots: 1, Counter: 3},
	}, 3, 3)

	if len(out.Mismatches) != 1 {
		t.Fatalf("got %d mismatches, want 1", len(out.Mismatches))
	}
	m := out.Mismatches[0]
	if m.CandidateID != 2 || m.Counter != 3 || m.Ballots != 1 {
		t.Errorf("mismatch = %+v", m)
	}
	if out.Standings[1].Votes != 1 {
		t.Errorf("votes = %d, want ballot count 1", out.Standings[1].Votes)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole int
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 4, 25},
		{3, 3, 100},
		{0, 7, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestWinners(t *testing.T) {
	tests := []struct {
		name      string
		standings []Standing
		want      int
	}{
		{"no standings", nil, 0},
		{"no votes", []Standing{{Votes: 0}, {Votes: 0}}, 0},
		{"single leader", []Standing{{Votes: 3}, {Votes: 1}}, 1},
		{"tied lead", []Standing{{Votes: 2}, {Votes: 2}, {Votes: 1}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Winners(tt.standings)); got != tt.want {
				t.Errorf("len(Winners) = %d, want %d", got, tt.want)
			}
		})
	}
}
