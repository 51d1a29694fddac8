package sqlite

import "golang.org/x/text/cases"

// foldKey is the comparison key stored beside usernames and emails and used
// for every case-insensitive lookup. SQLite's lower() only folds ASCII, so
// "Émilie" and "émilie" would otherwise be distinct.
func foldKey(s string) string {
	// A Caser is stateful; build one per call.
	return cases.Fold().String(s)
}
