// Package database provides the SQLite connection layer for the message
// record store.
//
// This package manages:
//   - Opening the database file with appropriate pragmas (WAL, busy timeout)
//   - Connection pool limits suited to SQLite's single-writer model
//   - Health checks and lifecycle management
//
// Schema ownership lives with the recorder package; a capture file has a
// single table and does not warrant a versioned migration framework.
//
// Usage:
//
//	db, err := database.Open(database.Config{
//	    Path:        cfg.Record.Path,
//	    WALMode:     cfg.Record.WALMode,
//	    BusyTimeout: cfg.Record.BusyTimeout,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
package database
