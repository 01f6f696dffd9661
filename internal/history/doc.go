// Package history records benchmark runs in a SQLite database so timings on
// the same inputs can be compared over time.
//
// The default driver is the pure Go modernc.org/sqlite ("sqlite"). Builds
// with cgo may select github.com/mattn/go-sqlite3 ("sqlite3") instead.
package history
