package sqlite

type migration struct {
	version int
	sql     string
}

// migrations must stay ordered by version.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS consent_records (
	id              TEXT PRIMARY KEY,
	phone_number    TEXT NOT NULL,
	missionary_type TEXT NOT NULL,
	consented_at    INTEGER NOT NULL,
	consent_text    TEXT NOT NULL,
	ip_address      TEXT NOT NULL,
	method          TEXT NOT NULL,
	status          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_consent_records_phone
	ON consent_records (phone_number, consented_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
