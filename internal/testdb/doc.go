//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT and run against it
// inside WithTx, which rolls the transaction back when the test function
// returns so tests never see each other's rows:
//
//	func TestWordStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        words := postgres.NewPostgresWordStore(tx, nil)
//	        ...
//	    })
//	}
//
// The connection string is read from WORDSPRINT_TEST_DATABASE_URL, falling
// back to DATABASE_URL. Tests are skipped when neither is set.
package testdb
