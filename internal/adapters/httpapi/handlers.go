package httpapi

import (
	"net/http"
	"strconv"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/ctxutil"
	"github.com/example/ballot/internal/ports/primary"
)

// Handler serves the ballot JSON API.
type Handler struct {
	elections  primary.ElectionService
	candidates primary.CandidateService
	voting     primary.VotingService
	results    primary.ResultsService
}

// NewHandler creates a new Handler.
func NewHandler(elections primary.ElectionService, candidates primary.CandidateService, voting primary.VotingService, results primary.ResultsService) *Handler {
	return &Handler{
		elections:  elections,
		candidates: candidates,
		voting:     voting,
		results:    results,
	}
}

// ListElections handles GET /elections?filter=
func (h *Handler) ListElections(w http.ResponseWriter, r *http.Request) {
	voterID := ctxutil.ActorFromContext(r.Context())
	list, err := h.elections.ListForVoter(r.Context(), voterID, r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]electionResponse, len(list))
	for i, e := range list {
		resp[i] = toElectionResponse(e.Election)
		if voterID != "" {
			voted := e.HasVoted
			resp[i].HasVoted = &voted
		}
	}
	JSONResponse(w, http.StatusOK, resp)
}

// GetElection handles GET /elections/{id}
func (h *Handler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.elections.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toElectionResponse(e))
}

// ListCandidates handles GET /elections/{id}/candidates
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.elections.GetElection(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.candidates.ListCandidates(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]candidateResponse, len(list))
	for i, c := range list {
		resp[i] = candidateResponse{ID: c.ID, Name: c.Name, Position: c.Position, Profile: c.Profile, PhotoURL: c.PhotoURL}
	}
	JSONResponse(w, http.StatusOK, resp)
}

// CastBallot handles POST /elections/{id}/ballots
func (h *Handler) CastBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req castBallotRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, string(ballot.CodeInvalidRequest), "invalid JSON body")
		return
	}

	resp, err := h.voting.CastVote(r.Context(), primary.CastVoteRequest{
		VoterID:     ctxutil.ActorFromContext(r.Context()),
		ElectionID:  id,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	JSONResponse(w, http.StatusCreated, castBallotResponse{
		BallotID:    resp.BallotID,
		ElectionID:  resp.ElectionID,
		CandidateID: resp.CandidateID,
		VotedAt:     resp.VotedAt,
	})
}

// GetMyBallot handles GET /elections/{id}/my-ballot
func (h *Handler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	voterID := ctxutil.ActorFromContext(r.Context())
	if voterID == "" {
		ErrorResponse(w, http.StatusBadRequest, string(ballot.CodeInvalidRequest), VoterHeader+" header is required")
		return
	}

	vote := h.voting.GetMyVote(r.Context(), id, voterID)
	if vote == nil {
		JSONResponse(w, http.StatusOK, myBallotResponse{HasVoted: false})
		return
	}
	votedAt := vote.VotedAt
	JSONResponse(w, http.StatusOK, myBallotResponse{
		HasVoted:      true,
		BallotID:      vote.BallotID,
		CandidateID:   vote.CandidateID,
		CandidateName: vote.CandidateName,
		VotedAt:       &votedAt,
	})
}

// GetResults handles GET /elections/{id}/results
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.results.ComputeResults(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, toResultsResponse(res))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(w, http.StatusBadRequest, string(ballot.CodeInvalidRequest), "election id must be a positive integer")
		return 0, false
	}
	return id, true
}
