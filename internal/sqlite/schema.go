// Package sqlite implements a SQLite-backed prefkit store.
//
// Each store is one database file holding grouped string entries in two
// layers (user and default). Reads are served from an in-memory snapshot
// loaded at open time; writes are buffered and committed in a single
// transaction by Sync.
package sqlite

// Entry layers.
const (
	layerUser    = 0
	layerDefault = 1
)

// Schema DDL. Entries carry a layer discriminator so stored defaults and
// user values share one table; store_info identifies the database.
const (
	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    grp TEXT NOT NULL,
    key TEXT NOT NULL,
    layer INTEGER NOT NULL,
    value TEXT NOT NULL,
    immutable INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (grp, key, layer)
);`

	createStoreInfo = `CREATE TABLE IF NOT EXISTS store_info (
    store_id TEXT PRIMARY KEY,
    schema_version INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	idxEntriesGroup = `CREATE INDEX IF NOT EXISTS idx_entries_group ON entries(grp, layer);`
)

// schemaVersion is written to store_info when a database is first created.
const schemaVersion = 1

// schemaDDL lists all statements executed at open, in order.
var schemaDDL = []string{
	createEntries,
	createStoreInfo,
	idxEntriesGroup,
}
