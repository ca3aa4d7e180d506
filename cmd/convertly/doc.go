// Command convertly is the CLI for the file conversion service: upload and
// convert files with live progress, browse conversion history, and manage
// blog posts, page content, and settings with a local snapshot fallback
// when the backend is unreachable.
package main
