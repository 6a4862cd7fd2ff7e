// Package preview serves rendered markup over HTTP.
//
// A Server renders source files under a root directory as standalone
// pages on request, lists them on an index page, and exposes a POST
// endpoint that converts a request body. Nothing is cached: every request
// reads the file again, so edits show up on reload.
package preview
