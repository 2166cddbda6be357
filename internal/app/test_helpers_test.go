package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/ballot/internal/ports/secondary"
)

// testNow is the fixed clock injected into services under test.
var testNow = time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// ============================================================================
// Election repository
// ============================================================================

// Ensure mockElectionRepository implements the interface
var _ secondary.ElectionRepository = (*mockElectionRepository)(nil)

// mockElectionRepository implements secondary.ElectionRepository for testing.
type mockElectionRepository struct {
	mu           sync.Mutex
	elections    map[int64]*secondary.ElectionRecord
	ballotCounts map[int64]int
	nextID       int64
	createErr    error
	getErr       error
	listErr      error
	updateErr    error
	deleteErr    error
	deleted      []int64
}

func newMockElectionRepository() *mockElectionRepository {
	return &mockElectionRepository{
		elections:    make(map[int64]*secondary.ElectionRecord),
		ballotCounts: make(map[int64]int),
		nextID:       1,
	}
}

// add stores an election whose window is centred on testNow.
func (m *mockElectionRepository) add(status string) *secondary.ElectionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &secondary.ElectionRecord{
		ID:        m.nextID,
		Title:     fmt.Sprintf("Election %d", m.nextID),
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(time.Hour),
		Status:    status,
		CreatedBy: "admin",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	m.elections[e.ID] = e
	m.nextID++
	return e
}

func (m *mockElectionRepository) Create(ctx context.Context, e *secondary.ElectionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.nextID
	m.nextID++
	m.elections[e.ID] = e
	return nil
}

func (m *mockElectionRepository) GetByID(ctx context.Context, id int64) (*secondary.ElectionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.elections[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, fmt.Errorf("election %d %w", id, secondary.ErrNotFound)
}

func (m *mockElectionRepository) List(ctx context.Context, filters secondary.ElectionFilters) ([]*secondary.ElectionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.ElectionRecord
	for _, e := range m.elections {
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockElectionRepository) UpdateStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.elections[id]
	if !ok {
		return fmt.Errorf("election %d %w", id, secondary.ErrNotFound)
	}
	e.Status = status
	e.UpdatedAt = updatedAt
	return nil
}

func (m *mockElectionRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.elections, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockElectionRepository) CountBallots(ctx context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ballotCounts[id], nil
}

func (m *mockElectionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range m.elections {
		counts[e.Status]++
	}
	return counts, nil
}

// ============================================================================
// Candidate repository
// ============================================================================

// Ensure mockCandidateRepository implements the interface
var _ secondary.CandidateRepository = (*mockCandidateRepository)(nil)

// mockCandidateRepository implements secondary.CandidateRepository for testing.
type mockCandidateRepository struct {
	mu           sync.Mutex
	candidates   map[int64]*secondary.CandidateRecord
	ballotCounts map[int64]int
	nextID       int64
	createErr    error
	getErr       error
	deleteErr    error
	deleted      []int64
}

func newMockCandidateRepository() *mockCandidateRepository {
	return &mockCandidateRepository{
		candidates:   make(map[int64]*secondary.CandidateRecord),
		ballotCounts: make(map[int64]int),
		nextID:       1,
	}
}

func (m *mockCandidateRepository) add(electionID int64, name string) *secondary.CandidateRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &secondary.CandidateRecord{
		ID:         m.nextID,
		ElectionID: electionID,
		Name:       name,
		Position:   "President",
		CreatedAt:  testNow,
	}
	m.candidates[c.ID] = c
	m.nextID++
	return c
}

func (m *mockCandidateRepository) votes(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.candidates[id].Votes
}

func (m *mockCandidateRepository) Create(ctx context.Context, c *secondary.CandidateRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	m.candidates[c.ID] = c
	return nil
}

func (m *mockCandidateRepository) GetByID(ctx context.Context, id int64) (*secondary.CandidateRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.candidates[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, fmt.Errorf("candidate %d %w", id, secondary.ErrNotFound)
}

func (m *mockCandidateRepository) ListByElection(ctx context.Context, electionID int64) ([]*secondary.CandidateRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.CandidateRecord
	for _, c := range m.candidates {
		if c.ElectionID == electionID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCandidateRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.candidates, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCandidateRepository) CountBallots(ctx context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ballotCounts[id], nil
}

// ============================================================================
// Ballot repository
// ============================================================================

// Ensure mockBallotRepository implements the interface
var _ secondary.BallotRepository = (*mockBallotRepository)(nil)

type ballotKey struct {
	electionID int64
	voterID    string
}

// mockBallotRepository implements secondary.BallotRepository for testing.
// Cast mimics the store: a unique (election, voter) key and a counter
// increment applied together under one lock.
type mockBallotRepository struct {
	mu         sync.Mutex
	ballots    map[ballotKey]*secondary.BallotRecord
	candidates *mockCandidateRepository
	castErrs   []error // returned by successive Cast calls before normal behaviour
	castCalls  int
	getErr     error
	countErr   error
	tallyErr   error
	mismatches []*secondary.CandidateTallyRecord
}

func newMockBallotRepository(candidates *mockCandidateRepository) *mockBallotRepository {
	return &mockBallotRepository{
		ballots:    make(map[ballotKey]*secondary.BallotRecord),
		candidates: candidates,
	}
}

func (m *mockBallotRepository) Cast(ctx context.Context, b *secondary.BallotRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.castCalls++
	if len(m.castErrs) > 0 {
		err := m.castErrs[0]
		m.castErrs = m.castErrs[1:]
		return err
	}

	key := ballotKey{b.ElectionID, b.VoterID}
	if _, exists := m.ballots[key]; exists {
		return fmt.Errorf("voter %s: %w", b.VoterID, secondary.ErrDuplicateBallot)
	}

	m.candidates.mu.Lock()
	defer m.candidates.mu.Unlock()
	c, ok := m.candidates.candidates[b.CandidateID]
	if !ok || c.ElectionID != b.ElectionID {
		return fmt.Errorf("candidate %d %w", b.CandidateID, secondary.ErrNotFound)
	}

	copied := *b
	m.ballots[key] = &copied
	c.Votes++
	return nil
}

func (m *mockBallotRepository) GetByVoter(ctx context.Context, electionID int64, voterID string) (*secondary.BallotRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.ballots[ballotKey{electionID, voterID}]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("ballot %w", secondary.ErrNotFound)
}

func (m *mockBallotRepository) ListElectionIDsByVoter(ctx context.Context, voterID string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for k := range m.ballots {
		if k.voterID == voterID {
			ids = append(ids, k.electionID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockBallotRepository) Count(ctx context.Context, filters secondary.BallotFilters) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.ballots {
		if filters.ElectionID != 0 && k.electionID != filters.ElectionID {
			continue
		}
		if filters.VoterID != "" && k.voterID != filters.VoterID {
			continue
		}
		n++
	}
	return n, nil
}

func (m *mockBallotRepository) Tally(ctx context.Context, electionID int64) (*secondary.TallyRecord, error) {
	if m.tallyErr != nil {
		return nil, m.tallyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates.mu.Lock()
	defer m.candidates.mu.Unlock()

	ballots := make(map[int64]int)
	voters := make(map[string]bool)
	for k, b := range m.ballots {
		if k.electionID == electionID {
			ballots[b.CandidateID]++
			voters[k.voterID] = true
		}
	}

	record := &secondary.TallyRecord{ElectionID: electionID, DistinctVoters: len(voters)}
	for _, c := range m.candidates.candidates {
		if c.ElectionID != electionID {
			continue
		}
		record.Candidates = append(record.Candidates, &secondary.CandidateTallyRecord{
			ElectionID:  electionID,
			CandidateID: c.ID,
			Name:        c.Name,
			Position:    c.Position,
			Counter:     c.Votes,
			Ballots:     ballots[c.ID],
		})
	}
	// Map order is random; the results engine must not depend on it.
	return record, nil
}

func (m *mockBallotRepository) ListCounterMismatches(ctx context.Context) ([]*secondary.CandidateTallyRecord, error) {
	return m.mismatches, nil
}

// ============================================================================
// Voter repository and identity
// ============================================================================

// Ensure mockVoterRepository implements the interface
var _ secondary.VoterRepository = (*mockVoterRepository)(nil)

// mockVoterRepository implements secondary.VoterRepository for testing.
type mockVoterRepository struct {
	mu        sync.Mutex
	voters    map[string]*secondary.VoterRecord
	createErr error
	getErr    error
}

func newMockVoterRepository() *mockVoterRepository {
	return &mockVoterRepository{voters: make(map[string]*secondary.VoterRecord)}
}

func (m *mockVoterRepository) add(id, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voters[id] = &secondary.VoterRecord{ID: id, Name: "Voter " + id, Role: role, CreatedAt: testNow}
}

func (m *mockVoterRepository) Create(ctx context.Context, v *secondary.VoterRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.voters[v.ID]; exists {
		return fmt.Errorf("voter %s: %w", v.ID, secondary.ErrConstraint)
	}
	m.voters[v.ID] = v
	return nil
}

func (m *mockVoterRepository) GetByID(ctx context.Context, id string) (*secondary.VoterRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.voters[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("voter %s %w", id, secondary.ErrNotFound)
}

func (m *mockVoterRepository) List(ctx context.Context, filters secondary.VoterFilters) ([]*secondary.VoterRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.VoterRecord
	for _, v := range m.voters {
		if filters.Role != "" && v.Role != filters.Role {
			continue
		}
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockVoterRepository) CountEligible(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.voters {
		if v.Role == "voter" {
			n++
		}
	}
	return n, nil
}

// mockIdentityProvider implements secondary.VoterIdentityProvider for testing.
type mockIdentityProvider struct {
	identity *secondary.VoterIdentity
	err      error
}

func (m *mockIdentityProvider) GetCurrentIdentity(ctx context.Context) (*secondary.VoterIdentity, error) {
	return m.identity, m.err
}

// ============================================================================
// Audit trail
// ============================================================================

// Ensure mockLogWriter implements the interface
var _ secondary.LogWriter = (*mockLogWriter)(nil)

// mockLogWriter records audit calls as "action entity id" strings.
type mockLogWriter struct {
	entries []string
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "create "+entityType+" "+entityID)
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, "delete "+entityType+" "+entityID)
	return nil
}

// Ensure mockAuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*mockAuditLogRepository)(nil)

// mockAuditLogRepository implements secondary.AuditLogRepository for testing.
type mockAuditLogRepository struct {
	entries     []*secondary.AuditLogRecord
	listFilters secondary.AuditLogFilters
	pruneCutoff time.Time
	pruned      int
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditLogRepository) GetByID(ctx context.Context, id int64) (*secondary.AuditLogRecord, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("audit log entry %d %w", id, secondary.ErrNotFound)
}

func (m *mockAuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	m.listFilters = filters
	return m.entries, nil
}

func (m *mockAuditLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	m.pruneCutoff = cutoff
	return m.pruned, nil
}
