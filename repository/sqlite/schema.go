package sqlite

// Schema is the idempotent bootstrap applied to every pool connection.
// Column names match the persisted layout this service inherited; durasi
// bounds and the kategori set are enforced by the usecase layer, not here.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT
);

CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT,
	tanggal TEXT,
	kategori TEXT,
	deskripsi TEXT,
	durasi INTEGER
);
CREATE INDEX IF NOT EXISTS idx_activities_owner ON activities(username, tanggal);
`
