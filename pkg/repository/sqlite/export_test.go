package sqlite

import "database/sql"

// SetOpenDB replaces the database opener and returns a function restoring it
func SetOpenDB(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	orig := openDB
	openDB = fn
	return func() { openDB = orig }
}
