// Package ui provides the embedded viewer assets.
package ui

import (
	_ "embed"
)

// ViewerHTML is the carousel viewer page. It fetches /links once and
// resolves each item on demand via /resolve, skipping items that fail.
//
//go:embed viewer.html
var ViewerHTML []byte
