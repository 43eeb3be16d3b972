package migrations

import "embed"

//go:embed inventory/*.sql
var InventoryFS embed.FS
