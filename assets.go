// Package txpayadmin embeds the console's templates and static files so the
// web binary ships as a single file. Dev mode reads frontend/ from disk instead.
package txpayadmin

import "embed"

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
