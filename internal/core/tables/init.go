// Package tables registers the coaching tables with the core registry.
// Import it for its side effects.
package tables

import "github.com/JonMunkholm/coachgrid/internal/core"

// GroupCoaching is the registry group of every table in this package.
const GroupCoaching = "Coaching"

func init() {
	core.Register(clients())
	core.Register(programs())
	core.Register(checkIns())
}

// idSpec is the hidden uuid identity column shared by all tables.
var idSpec = core.FieldSpec{Name: "ID", Column: "id", Hidden: true}
