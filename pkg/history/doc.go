// Package history records classification runs so they can be listed, shown
// and pruned later.
//
// A Store persists Records. Two implementations exist:
//
//   - SQLiteStore: database/sql over either the cgo driver
//     (github.com/mattn/go-sqlite3, driver "sqlite3") or the pure Go driver
//     (modernc.org/sqlite, driver "sqlite").
//   - MemoryStore: process-local, used in tests and when history is disabled.
//
// Example:
//
//	store, err := history.Open(history.SQLiteConfig{
//	    Driver: history.DriverModernc,
//	    Path:   ".sieve/history.db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec := history.NewRecord(schemaPath, tokens, result)
//	if err := store.Save(ctx, rec); err != nil {
//	    return err
//	}
//
// Retention is handled by the retention subpackage.
package history
