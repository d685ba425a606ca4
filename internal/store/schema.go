package store

const Schema = `
CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	data BLOB,
	expires_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_cache_expires_at ON cache(expires_at);
`
