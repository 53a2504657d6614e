// Package database handles database connections, schema inspection and plain-text table I/O.
//
// It wraps GORM with the MySQL and SQLite dialects. SQLite is used for local runs and tests;
// MySQL for shared deployments.
//
// # Connect
//
// Connect opens the configured driver and pings it. An empty driver means no database is
// configured; callers check Config.Enabled before connecting.
//
// # Tables as datasets
//
// ReadTable returns a table's header (declaration order, from GetTableColumns) and its rows with
// every value converted to text. WriteTable replaces a table's rows inside one transaction,
// creating a TEXT-column table first when it does not exist.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	header, rows, err := database.ReadTable(ctx, db, "contacts")
package database
