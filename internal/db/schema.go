package db

// The schema is defined once per dialect as an ordered list of migrations.
//
// # Schema Drift Protection
//
// Tests open their databases through Open, which applies every migration, so
// repository code and the schema cannot drift apart. Do not hardcode CREATE
// TABLE statements in tests.
//
// # Store-level invariants
//
//   - UNIQUE(election_id, voter_id) on ballots arbitrates "already voted".
//   - The composite foreign key (candidate_id, election_id) makes a ballot for a
//     candidate of another election impossible.
//   - Ballots restrict deletion of their election and candidate; candidates
//     cascade with their election.
//   - Triggers make ballots immutable and pin a candidate to its election.
//   - votes >= 0 and end_date > start_date are CHECK constraints.

const sqliteCoreSchema = `
CREATE TABLE IF NOT EXISTS voters (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	role TEXT NOT NULL CHECK(role IN ('voter', 'admin')) DEFAULT 'voter',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voters_role ON voters(role);

CREATE TABLE IF NOT EXISTS elections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL CHECK(length(trim(title)) > 0),
	description TEXT,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'active', 'completed', 'cancelled')) DEFAULT 'pending',
	created_by TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CHECK(end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status);

CREATE TABLE IF NOT EXISTS candidates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	election_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	position TEXT NOT NULL,
	profile TEXT,
	photo_url TEXT,
	votes INTEGER NOT NULL DEFAULT 0 CHECK(votes >= 0),
	created_at DATETIME NOT NULL,
	UNIQUE(id, election_id),
	FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_candidates_election ON candidates(election_id);

CREATE TABLE IF NOT EXISTS ballots (
	id TEXT PRIMARY KEY,
	election_id INTEGER NOT NULL,
	voter_id TEXT NOT NULL,
	candidate_id INTEGER NOT NULL,
	voted_at DATETIME NOT NULL,
	UNIQUE(election_id, voter_id),
	FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE RESTRICT,
	FOREIGN KEY (candidate_id, election_id) REFERENCES candidates(id, election_id) ON DELETE RESTRICT,
	FOREIGN KEY (voter_id) REFERENCES voters(id) ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_ballots_candidate ON ballots(candidate_id);
CREATE INDEX IF NOT EXISTS idx_ballots_voter ON ballots(voter_id);
`

const sqliteAuditSchema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	actor_id TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('election', 'candidate', 'voter')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
`

const sqliteTriggers = `
CREATE TRIGGER IF NOT EXISTS ballots_no_update BEFORE UPDATE ON ballots
BEGIN
	SELECT RAISE(ABORT, 'ballots are immutable');
END;

CREATE TRIGGER IF NOT EXISTS ballots_no_delete BEFORE DELETE ON ballots
BEGIN
	SELECT RAISE(ABORT, 'ballots are permanent');
END;

CREATE TRIGGER IF NOT EXISTS candidates_election_fixed BEFORE UPDATE OF election_id ON candidates
WHEN NEW.election_id <> OLD.election_id
BEGIN
	SELECT RAISE(ABORT, 'candidate election cannot change');
END;
`

const postgresCoreSchema = `
CREATE TABLE IF NOT EXISTS voters (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	role TEXT NOT NULL CHECK(role IN ('voter', 'admin')) DEFAULT 'voter',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voters_role ON voters(role);

CREATE TABLE IF NOT EXISTS elections (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL CHECK(length(trim(title)) > 0),
	description TEXT,
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'active', 'completed', 'cancelled')) DEFAULT 'pending',
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CHECK(end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status);

CREATE TABLE IF NOT EXISTS candidates (
	id BIGSERIAL PRIMARY KEY,
	election_id BIGINT NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	position TEXT NOT NULL,
	profile TEXT,
	photo_url TEXT,
	votes INTEGER NOT NULL DEFAULT 0 CHECK(votes >= 0),
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE(id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_candidates_election ON candidates(election_id);

CREATE TABLE IF NOT EXISTS ballots (
	id TEXT PRIMARY KEY,
	election_id BIGINT NOT NULL REFERENCES elections(id) ON DELETE RESTRICT,
	voter_id TEXT NOT NULL REFERENCES voters(id) ON DELETE RESTRICT,
	candidate_id BIGINT NOT NULL,
	voted_at TIMESTAMPTZ NOT NULL,
	UNIQUE(election_id, voter_id),
	FOREIGN KEY (candidate_id, election_id) REFERENCES candidates(id, election_id) ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_ballots_candidate ON ballots(candidate_id);
CREATE INDEX IF NOT EXISTS idx_ballots_voter ON ballots(voter_id);
`

const postgresAuditSchema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id BIGSERIAL PRIMARY KEY,
	actor_id TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('election', 'candidate', 'voter')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
`

const postgresTriggers = `
CREATE OR REPLACE FUNCTION ballots_immutable() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'ballots are immutable' USING ERRCODE = 'integrity_constraint_violation';
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS ballots_immutable ON ballots;
CREATE TRIGGER ballots_immutable BEFORE UPDATE OR DELETE ON ballots
	FOR EACH ROW EXECUTE FUNCTION ballots_immutable();

CREATE OR REPLACE FUNCTION candidates_election_fixed() RETURNS trigger AS $$
BEGIN
	IF NEW.election_id <> OLD.election_id THEN
		RAISE EXCEPTION 'candidate election cannot change' USING ERRCODE = 'integrity_constraint_violation';
	END IF;
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS candidates_election_fixed ON candidates;
CREATE TRIGGER candidates_election_fixed BEFORE UPDATE OF election_id ON candidates
	FOR EACH ROW EXECUTE FUNCTION candidates_election_fixed();
`
