package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/ports/secondary"
)

// VoterServiceImpl implements the VoterService interface.
type VoterServiceImpl struct {
	voterRepo secondary.VoterRepository
	identity  secondary.VoterIdentityProvider
	logWriter secondary.LogWriter
	now       func() time.Time
}

// NewVoterService creates a new VoterService with injected dependencies.
func NewVoterService(
	voterRepo secondary.VoterRepository,
	identity secondary.VoterIdentityProvider,
	logWriter secondary.LogWriter,
) *VoterServiceImpl {
	return &VoterServiceImpl{
		voterRepo: voterRepo,
		identity:  identity,
		logWriter: logWriter,
		now:       time.Now,
	}
}

// RegisterVoter mirrors a voter from the identity system into the directory.
func (s *VoterServiceImpl) RegisterVoter(ctx context.Context, req primary.RegisterVoterRequest) (*primary.Voter, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, errors.New("voter id is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("voter name is required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleVoter
	}
	if role != models.RoleVoter && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q (want %s or %s)", role, models.RoleVoter, models.RoleAdmin)
	}

	record := &secondary.VoterRecord{
		ID:        id,
		Name:      name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.voterRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register voter: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, models.EntityVoter, id)
	}

	return recordToVoter(record), nil
}

// GetVoter retrieves a voter by ID.
func (s *VoterServiceImpl) GetVoter(ctx context.Context, voterID string) (*primary.Voter, error) {
	record, err := s.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		return nil, err
	}
	return recordToVoter(record), nil
}

// ListVoters lists voters with an optional role filter.
func (s *VoterServiceImpl) ListVoters(ctx context.Context, role string) ([]*primary.Voter, error) {
	records, err := s.voterRepo.List(ctx, secondary.VoterFilters{Role: role})
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}

	voters := make([]*primary.Voter, len(records))
	for i, r := range records {
		voters[i] = recordToVoter(r)
	}
	return voters, nil
}

// WhoAmI resolves the current caller's identity.
func (s *VoterServiceImpl) WhoAmI(ctx context.Context) (*primary.Voter, error) {
	if s.identity == nil {
		return nil, errors.New("no identity provider configured")
	}
	identity, err := s.identity.GetCurrentIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetVoter(ctx, identity.ID)
}

func recordToVoter(r *secondary.VoterRecord) *primary.Voter {
	return &primary.Voter{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		Eligible:  models.Voter{Role: r.Role}.Eligible(),
		CreatedAt: r.CreatedAt,
	}
}

// Ensure VoterServiceImpl implements the interface
var _ primary.VoterService = (*VoterServiceImpl)(nil)
