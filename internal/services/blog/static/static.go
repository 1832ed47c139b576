package static

import "embed"

// FS exposes blog static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
