// Package identity resolves the voter a request acts as.
// Authentication itself happens elsewhere; this adapter only maps an
// already-established voter id onto the local voter directory.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/ballot/internal/ctxutil"
	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/secondary"
)

// ErrNoIdentity is returned when neither the context nor the fallback names a voter.
var ErrNoIdentity = errors.New("no voter identity: pass --as or set BALLOT_VOTER")

// Provider implements secondary.VoterIdentityProvider.
// The actor carried in the context wins over the fallback id.
type Provider struct {
	voterRepo secondary.VoterRepository
	fallback  string
}

// NewProvider creates a provider. fallback is used when the context carries no actor.
func NewProvider(voterRepo secondary.VoterRepository, fallback string) *Provider {
	return &Provider{voterRepo: voterRepo, fallback: fallback}
}

// GetCurrentIdentity returns the identity of the current voter.
func (p *Provider) GetCurrentIdentity(ctx context.Context) (*secondary.VoterIdentity, error) {
	id := ctxutil.ActorFromContext(ctx)
	if id == "" {
		id = p.fallback
	}
	if id == "" {
		return nil, ErrNoIdentity
	}

	record, err := p.voterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("unknown voter %q: %w", id, err)
		}
		return nil, fmt.Errorf("failed to resolve voter: %w", err)
	}

	return &secondary.VoterIdentity{
		ID:       record.ID,
		Name:     record.Name,
		Role:     record.Role,
		Eligible: models.Voter{Role: record.Role}.Eligible(),
	}, nil
}

// Ensure Provider implements the interface
var _ secondary.VoterIdentityProvider = (*Provider)(nil)
