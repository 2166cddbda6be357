package ballot

import "errors"

// Code names a vote-cast outcome for callers that render or transmit it.
type Code string

// Outcome codes.
const (
	CodeOK                        Code = "ok"
	CodeInvalidRequest            Code = "invalid_request"
	CodeVoterNotEligible          Code = "voter_not_eligible"
	CodeAlreadyVoted              Code = "already_voted"
	CodeElectionNotVotable        Code = "election_not_votable"
	CodeElectionNotFound          Code = "election_not_found"
	CodeCandidateNotFound         Code = "candidate_not_found"
	CodeCandidateElectionMismatch Code = "candidate_election_mismatch"
	CodeStorageFailure            Code = "storage_failure"
)

// Sentinel outcomes. Compare with errors.Is.
var (
	ErrInvalidRequest            = errors.New("invalid vote request")
	ErrVoterNotEligible          = errors.New("voter is not eligible")
	ErrAlreadyVoted              = errors.New("already voted in this election")
	ErrElectionNotVotable        = errors.New("election is not open for voting")
	ErrElectionNotFound          = errors.New("election not found")
	ErrCandidateNotFound         = errors.New("candidate not found")
	ErrCandidateElectionMismatch = errors.New("candidate does not belong to election")
	ErrStorageFailure            = errors.New("storage failure")
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrInvalidRequest, CodeInvalidRequest},
	{ErrVoterNotEligible, CodeVoterNotEligible},
	{ErrAlreadyVoted, CodeAlreadyVoted},
	{ErrElectionNotVotable, CodeElectionNotVotable},
	{ErrElectionNotFound, CodeElectionNotFound},
	{ErrCandidateNotFound, CodeCandidateNotFound},
	{ErrCandidateElectionMismatch, CodeCandidateElectionMismatch},
	{ErrStorageFailure, CodeStorageFailure},
}

// CodeOf maps an error returned by the registrar to its outcome code.
// Errors outside the taxonomy are reported as storage failures.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeStorageFailure
}

// Retryable reports whether the caller may resubmit unchanged.
// Only storage failures qualify; every other outcome is terminal.
func Retryable(err error) bool {
	return CodeOf(err) == CodeStorageFailure
}
