// Package store persists local snapshots of backend entities in SQLite.
//
// The database lives under the configured data directory and holds the last
// known copy of blog posts, editable page content, and the settings
// document. It is written through on every successful or attempted remote
// mutation so the CLI keeps working when the backend is unreachable.
package store
