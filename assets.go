// Package medipharm provides embedded assets for production builds.
package medipharm

import "embed"

// In dev mode (IS_DEV=true) templates and static files are read from disk so
// edits show up without a rebuild; otherwise these embedded copies are served.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
