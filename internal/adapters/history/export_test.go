package history

import "database/sql"

// SetOpenDB replaces the database opener and returns a restore function.
func SetOpenDB(fn func(driver, dsn string) (*sql.DB, error)) func() {
	prev := openDB
	openDB = fn
	return func() { openDB = prev }
}
