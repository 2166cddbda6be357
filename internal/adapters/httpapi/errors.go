package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/core/election"
	"github.com/example/ballot/internal/ports/secondary"
)

// statusFor maps a vote outcome code to an HTTP status.
func statusFor(code ballot.Code) int {
	switch code {
	case ballot.CodeInvalidRequest:
		return http.StatusBadRequest
	case ballot.CodeVoterNotEligible:
		return http.StatusForbidden
	case ballot.CodeElectionNotFound, ballot.CodeCandidateNotFound:
		return http.StatusNotFound
	case ballot.CodeAlreadyVoted, ballot.CodeElectionNotVotable:
		return http.StatusConflict
	case ballot.CodeCandidateElectionMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusServiceUnavailable
	}
}

// retryAfterSeconds is the Retry-After hint sent with retryable failures.
const retryAfterSeconds = "1"

// writeError renders a service error. Storage failures are logged, their
// detail is kept out of the response, and the client is told when to retry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, election.ErrUnknownFilter):
		ErrorResponse(w, http.StatusBadRequest, string(ballot.CodeInvalidRequest), err.Error())
		return
	case errors.Is(err, secondary.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, string(ballot.CodeElectionNotFound), "election not found")
		return
	}

	code := ballot.CodeOf(err)
	if ballot.Retryable(err) {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		w.Header().Set("Retry-After", retryAfterSeconds)
		ErrorResponse(w, http.StatusServiceUnavailable, string(code), "vote store unavailable, retry later")
		return
	}
	ErrorResponse(w, statusFor(code), string(code), err.Error())
}
