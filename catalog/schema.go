package catalog

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	genre TEXT NOT NULL,
	imported_at TEXT NOT NULL
);`

const createRecordFieldsTable = `
CREATE TABLE IF NOT EXISTS record_fields (
	record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (record_id, name)
);`

const createRecordContributorsTable = `
CREATE TABLE IF NOT EXISTS record_contributors (
	record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	contributor_id TEXT NOT NULL,
	PRIMARY KEY (record_id, position)
);
CREATE INDEX IF NOT EXISTS idx_record_contributors_contributor ON record_contributors(contributor_id);`

const createURLRewritesTable = `
CREATE TABLE IF NOT EXISTS url_rewrites (
	record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	original_url TEXT NOT NULL,
	canonical_url TEXT NOT NULL,
	PRIMARY KEY (record_id, original_url)
);`

const deleteRecord = `DELETE FROM records WHERE id = ?`

const insertRecord = `
INSERT INTO records (id, genre, imported_at)
VALUES (?, ?, ?)`

const insertRecordField = `
INSERT INTO record_fields (record_id, name, value)
VALUES (?, ?, ?)`

const insertRecordContributor = `
INSERT INTO record_contributors (record_id, position, contributor_id)
VALUES (?, ?, ?)`

const insertURLRewrite = `
INSERT INTO url_rewrites (record_id, original_url, canonical_url)
VALUES (?, ?, ?)`

const selectRecordCount = `SELECT COUNT(*) FROM records`

const selectRecord = `SELECT genre FROM records WHERE id = ?`

const selectRecordFields = `SELECT name, value FROM record_fields WHERE record_id = ?`

const selectRecordContributors = `
SELECT contributor_id FROM record_contributors
WHERE record_id = ?
ORDER BY position`

const selectURLRewrites = `SELECT original_url, canonical_url FROM url_rewrites WHERE record_id = ?`

const selectRecordsByContributor = `
SELECT DISTINCT record_id FROM record_contributors
WHERE contributor_id = ?
ORDER BY record_id`
