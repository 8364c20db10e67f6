package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS blobs (
    key                  TEXT PRIMARY KEY,
    value                BLOB NOT NULL,
    revision             INTEGER NOT NULL DEFAULT 1,
    updated_at           TEXT NOT NULL
);
`
