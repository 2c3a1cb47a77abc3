package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
