package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/ports/primary"
)

// VoteAdapter translates CLI vote commands to VotingService calls.
type VoteAdapter struct {
	service primary.VotingService
	out     io.Writer
}

// NewVoteAdapter creates a new VoteAdapter.
func NewVoteAdapter(service primary.VotingService, out io.Writer) *VoteAdapter {
	return &VoteAdapter{service: service, out: out}
}

// Cast casts a ballot and reports the outcome.
// The returned error keeps the ballot sentinel so callers can still match it.
func (a *VoteAdapter) Cast(ctx context.Context, req primary.CastVoteRequest) (*primary.CastVoteResponse, error) {
	resp, err := a.service.CastVote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hint(ballot.CodeOf(err)), err)
	}

	fmt.Fprintf(a.out, "✓ Ballot %s cast for candidate %d in election %d\n", resp.BallotID, resp.CandidateID, resp.ElectionID)
	return resp, nil
}

// Mine shows who the voter chose in an election.
func (a *VoteAdapter) Mine(ctx context.Context, electionID int64, voterID string) *primary.MyVote {
	vote := a.service.GetMyVote(ctx, electionID, voterID)
	if vote == nil {
		fmt.Fprintf(a.out, "You have not voted in election %d.\n", electionID)
		return nil
	}

	name := vote.CandidateName
	if name == "" {
		name = fmt.Sprintf("candidate %d", vote.CandidateID)
	}
	fmt.Fprintf(a.out, "You voted for %s on %s (ballot %s)\n", name, vote.VotedAt.Local().Format("2006-01-02 15:04"), vote.BallotID)
	return vote
}

// hint phrases an outcome code for people.
func hint(code ballot.Code) string {
	switch code {
	case ballot.CodeInvalidRequest:
		return "invalid vote"
	case ballot.CodeVoterNotEligible:
		return "you are not eligible to vote"
	case ballot.CodeAlreadyVoted:
		return "you have already voted in this election"
	case ballot.CodeElectionNotVotable:
		return "this election is not open for voting"
	case ballot.CodeElectionNotFound:
		return "no such election"
	case ballot.CodeCandidateNotFound:
		return "no such candidate"
	case ballot.CodeCandidateElectionMismatch:
		return "that candidate is not standing in this election"
	default:
		return "vote not recorded, please try again"
	}
}
