// Package fallback layers local snapshots under the admin API so admin
// entities remain readable and editable while the backend is down.
//
// Reads try the backend first and fall back to the snapshot store, then to
// built-in seed data. Writes always update the snapshot; when the matching
// backend call fails the result is flagged LocalOnly and the edit survives
// purely on disk. There is no merge step: the next successful remote read
// replaces whatever the snapshot holds.
package fallback
