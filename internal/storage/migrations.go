package storage

// migration is one idempotent step in schema evolution. Steps use
// CREATE ... IF NOT EXISTS throughout (grounded on
// other_examples/61442451_onlycan17-mycoder_cli's migrate.go, a cleaner
// idiom than the teacher's ad hoc sqlite_master string-splitting) so
// re-running the list against an already-migrated database is a no-op.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS bookmarks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	url           TEXT NOT NULL UNIQUE,
	title         TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	tags          TEXT NOT NULL DEFAULT ',,',
	access_count  INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL,
	embedding     BLOB,
	content_hash  BLOB,
	embeddable    INTEGER NOT NULL DEFAULT 1,
	file_path     TEXT,
	file_mtime    INTEGER,
	file_hash     TEXT
);`,
	},
	{
		version: 2,
		sql:     `CREATE INDEX IF NOT EXISTS idx_bookmarks_file_path ON bookmarks(file_path);`,
	},
	{
		version: 3,
		sql: `
CREATE VIRTUAL TABLE IF NOT EXISTS bookmarks_fts USING fts5(
	title, description, url,
	content='bookmarks',
	content_rowid='id'
);`,
	},
	{
		version: 4,
		sql: `
CREATE TRIGGER IF NOT EXISTS bookmarks_ai AFTER INSERT ON bookmarks BEGIN
	INSERT INTO bookmarks_fts(rowid, title, description, url) VALUES (new.id, new.title, new.description, new.url);
END;`,
	},
	{
		version: 5,
		sql: `
CREATE TRIGGER IF NOT EXISTS bookmarks_ad AFTER DELETE ON bookmarks BEGIN
	INSERT INTO bookmarks_fts(bookmarks_fts, rowid, title, description, url) VALUES ('delete', old.id, old.title, old.description, old.url);
END;`,
	},
	{
		version: 6,
		sql: `
CREATE TRIGGER IF NOT EXISTS bookmarks_au AFTER UPDATE ON bookmarks BEGIN
	INSERT INTO bookmarks_fts(bookmarks_fts, rowid, title, description, url) VALUES ('delete', old.id, old.title, old.description, old.url);
	INSERT INTO bookmarks_fts(rowid, title, description, url) VALUES (new.id, new.title, new.description, new.url);
END;`,
	},
}

const createMigrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
);`
