// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either a local sqlite file (the default, one file per
// installation under output/) or a MySQL server, based on the application's configuration.
//
// # Connect
//
// Connect creates the parent directory of a sqlite database file when needed, opens the
// dialector, applies pool settings suited to the driver and pings the database.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table (PRAGMA table_info on sqlite, SHOW COLUMNS
// on MySQL). MissingColumns builds on it so that stores can verify, after their
// create-if-missing migration, that every column they write exists.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "app", []string{"platform_app_key"})
package database
