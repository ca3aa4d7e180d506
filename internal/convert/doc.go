// Package convert orchestrates the upload-and-convert flow against the
// backend: upload a batch, request conversion, then poll each file's
// progress on its own goroutine until it reaches a terminal status.
//
// State lives in a Tracker keyed by file identifier; the Scheduler owns the
// polling goroutines and guarantees at most one loop per identifier. The
// Orchestrator ties both to the API client and the notification stack.
package convert
