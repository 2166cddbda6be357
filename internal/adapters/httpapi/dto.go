package httpapi

import (
	"time"

	"github.com/example/ballot/internal/ports/primary"
)

type castBallotRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

type castBallotResponse struct {
	BallotID    string    `json:"ballot_id"`
	ElectionID  int64     `json:"election_id"`
	CandidateID int64     `json:"candidate_id"`
	VotedAt     time.Time `json:"voted_at"`
}

type electionResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	Classification string    `json:"classification"`
	Votable        bool      `json:"votable"`
	HasVoted       *bool     `json:"has_voted,omitempty"`
}

type candidateResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Profile  string `json:"profile,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type myBallotResponse struct {
	HasVoted      bool       `json:"has_voted"`
	BallotID      string     `json:"ballot_id,omitempty"`
	CandidateID   int64      `json:"candidate_id,omitempty"`
	CandidateName string     `json:"candidate_name,omitempty"`
	VotedAt       *time.Time `json:"voted_at,omitempty"`
}

type standingResponse struct {
	Rank        int     `json:"rank"`
	CandidateID int64   `json:"candidate_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Votes       int     `json:"votes"`
	Percentage  float64 `json:"percentage"`
}

type resultsResponse struct {
	ElectionID     int64              `json:"election_id"`
	Title          string             `json:"title"`
	Classification string             `json:"classification"`
	Standings      []standingResponse `json:"standings"`
	TotalVotes     int                `json:"total_votes"`
	DistinctVoters int                `json:"distinct_voters"`
	EligibleVoters int                `json:"eligible_voters"`
	Turnout        float64            `json:"turnout"`
	CountersOK     bool               `json:"counters_ok"`
}

func toElectionResponse(e *primary.Election) electionResponse {
	return electionResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Status:         e.Status,
		Classification: e.Classification,
		Votable:        e.Votable,
	}
}

func toResultsResponse(res *primary.Results) resultsResponse {
	standings := make([]standingResponse, len(res.Standings))
	for i, st := range res.Standings {
		standings[i] = standingResponse{
			Rank:        st.Rank,
			CandidateID: st.CandidateID,
			Name:        st.Name,
			Position:    st.Position,
			Votes:       st.Votes,
			Percentage:  st.Percentage,
		}
	}
	return resultsResponse{
		ElectionID:     res.ElectionID,
		Title:          res.Title,
		Classification: res.Classification,
		Standings:      standings,
		TotalVotes:     res.TotalVotes,
		DistinctVoters: res.DistinctVoters,
		EligibleVoters: res.EligibleVoters,
		Turnout:        res.Turnout,
		CountersOK:     len(res.Mismatches) == 0,
	}
}
