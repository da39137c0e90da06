// Package mcp exposes a single brief's sections to AI assistants over the
// Model Context Protocol.
//
// Each server wraps one read-only section store. Tools page through
// sections, fetch a full section by index and rank sections against a
// query. Resources expose the overview and the annotated document.
package mcp

import "errors"

// ErrMissingStore is returned by NewServer when no section store is given.
var ErrMissingStore = errors.New("mcp: section store is required")
