package db

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so
// a column referenced by repository code but missing here fails immediately
// with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Onboarding profiles, one per user
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	display_name TEXT,
	gladness_drivers TEXT NOT NULL DEFAULT '[]',
	personality_traits TEXT NOT NULL DEFAULT '[]',
	physical_limitations TEXT NOT NULL DEFAULT '[]',
	recharge_activities TEXT NOT NULL DEFAULT '[]',
	hunger TEXT,
	resistance INTEGER CHECK (resistance IS NULL OR (resistance BETWEEN 0 AND 100)),
	vocation TEXT,
	onboarding_complete INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Missions (current slot and history)
CREATE TABLE IF NOT EXISTS missions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT NOT NULL,
	estimated_minutes INTEGER NOT NULL CHECK (estimated_minutes > 0),
	personal_note TEXT,
	mood TEXT NOT NULL,
	gladness_drivers TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL CHECK (status IN ('pending', 'active', 'completed', 'skipped')),
	felt_alive INTEGER,
	source TEXT,
	created_at DATETIME NOT NULL,
	completed_at DATETIME,
	archived_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_missions_user_created ON missions(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_missions_current ON missions(user_id) WHERE archived_at IS NULL;

-- Community needs board
CREATE TABLE IF NOT EXISTS hunger_feed (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	location TEXT NOT NULL,
	category TEXT NOT NULL CHECK (category IN ('service', 'organization', 'support')),
	creator_id TEXT,
	creator_display_name TEXT,
	people_needed INTEGER CHECK (people_needed IS NULL OR people_needed >= 1),
	status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'filled', 'cancelled')),
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS need_acceptances (
	need_id TEXT NOT NULL REFERENCES hunger_feed(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (need_id, user_id)
);

-- Reflection journal
CREATE TABLE IF NOT EXISTS journal_entries (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	mission_id TEXT NOT NULL,
	content TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	time_of_day TEXT NOT NULL CHECK (time_of_day IN ('morning', 'afternoon', 'evening', 'night')),
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_user_created ON journal_entries(user_id, created_at DESC);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
