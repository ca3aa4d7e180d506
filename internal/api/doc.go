// Package api implements the HTTP client for the Convertly backend.
//
// It is the single point of contact with the remote service: request
// construction, bearer authentication, JSON envelopes, multipart uploads,
// and binary downloads all live here. No business logic does; callers
// receive the backend's responses and errors as-is, with non-2xx statuses
// surfaced as *Error values carrying the backend's message.
package api
