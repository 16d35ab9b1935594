// Package sqlite provides an embedded SQLite renewal store built on the pure
// Go modernc.org/sqlite driver.
//
// Open applies the embedded goose migrations before returning the handle:
//
//	db, err := sqlite.Open("file:/var/lib/sitecert/renewals.db")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	store := sqlite.NewRenewalStore(db)
//
// Use ":memory:" for a throw-away database. The handle is limited to one
// open connection so an in-memory database is shared by every query and
// writers never contend for the file lock.
package sqlite
