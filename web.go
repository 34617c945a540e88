// Package trainingdash embeds the dashboard's web assets.
package trainingdash

import "embed"

// WebFS holds web/templates and web/static.
//
//go:embed web/templates web/static
var WebFS embed.FS
