package testsupport

import (
	"testing"

	"convertly/internal/config"
	"convertly/internal/store"
)

// MustOpenStore opens a snapshot store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	snapshots, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = snapshots.Close()
	})
	return snapshots
}
