// Package notifications delivers user-facing outcome messages.
//
// Three severities mirror the toast taxonomy of the web UI: success,
// informational, and destructive (error). The console notifier is always
// active; an ntfy push notifier is added when a topic is configured, so
// long-running conversions can report completion to a phone.
package notifications
