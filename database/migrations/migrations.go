// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported for its side effects so every migration
// is registered before the runner executes.
package migrations
