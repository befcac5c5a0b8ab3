package tables

import "github.com/JonMunkholm/coachgrid/internal/core"

// ProgramLevels are the difficulty levels of a training program.
var ProgramLevels = []string{"beginner", "intermediate", "advanced"}

func programs() core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:   "programs",
			Group: GroupCoaching,
			Label: "Programs",
		},
		IDColumn: "id",
		OrderBy:  "created_at",
		FieldSpecs: []core.FieldSpec{
			idSpec,
			{Name: "Name", Column: "name", Type: core.FieldText, Required: true, Normalizer: NormalizeName},
			{Name: "Coach", Column: "coach", Type: core.FieldText, Normalizer: NormalizeName},
			{Name: "Level", Column: "level", Type: core.FieldEnum, Required: true, EnumValues: ProgramLevels},
			{Name: "Weeks", Column: "weeks", Type: core.FieldNumeric},
			{Name: "Price", Column: "price", Type: core.FieldNumeric},
			{Name: "Active", Column: "active", Type: core.FieldBool},
			{Name: "Description", Column: "description", Type: core.FieldText, Unsortable: true, Width: "30%"},
			{Name: "Created", Column: "created_at", Type: core.FieldText, Hidden: true},
		},
		Schema: []string{`
CREATE TABLE IF NOT EXISTS programs (
	id          uuid PRIMARY KEY,
	name        text NOT NULL,
	coach       text,
	level       text NOT NULL DEFAULT 'beginner',
	weeks       numeric(4, 0),
	price       numeric(10, 2),
	active      boolean NOT NULL DEFAULT true,
	description text,
	created_at  timestamptz NOT NULL DEFAULT now()
)`},
	}
}
