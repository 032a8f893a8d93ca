// Package sqlite provides the persisted vector store on top of SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Generations
//
// Every index build writes a complete, self-contained database file:
//
//	<dir>/generations/<uuid>.db   one store build
//	<dir>/CURRENT                 name of the published generation
//
// A build is invisible until Publish writes CURRENT.tmp and renames it
// over CURRENT. Rename is atomic on POSIX filesystems, so readers see
// either the previous generation or the new one, never a partial build.
// The previous generation file is removed after the swap.
//
// # Schema
//
// The schema of each generation is managed through versioned migrations
// stored in the migrations/ directory.
//
// # Thread Safety
//
// Readers open their own read-only connection and are safe for concurrent
// use. A builder is used by one goroutine.
package sqlite
