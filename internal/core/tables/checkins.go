package tables

import (
	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/grid"
)

// Moods are the self-reported moods on a check-in.
var Moods = []string{"great", "good", "okay", "low"}

func checkIns() core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:   "check_ins",
			Group: GroupCoaching,
			Label: "Check-ins",
		},
		IDColumn:    "id",
		OrderBy:     "checked_in_on",
		DefaultSort: grid.SortConfig{Key: "checked_in_on", Direction: grid.SortDescending},
		FieldSpecs: []core.FieldSpec{
			idSpec,
			{Name: "Client", Column: "client_name", Type: core.FieldText, Required: true, Normalizer: NormalizeName},
			{Name: "Date", Column: "checked_in_on", Type: core.FieldDate, Required: true},
			{Name: "Weight (kg)", Column: "weight_kg", Type: core.FieldNumeric},
			{Name: "Mood", Column: "mood", Type: core.FieldEnum, EnumValues: Moods},
			{Name: "Workout done", Column: "workout_done", Type: core.FieldBool},
			{Name: "Notes", Column: "notes", Type: core.FieldText, Unsortable: true},
		},
		Schema: []string{`
CREATE TABLE IF NOT EXISTS check_ins (
	id            uuid PRIMARY KEY,
	client_name   text NOT NULL,
	checked_in_on date NOT NULL,
	weight_kg     numeric(5, 1),
	mood          text,
	workout_done  boolean,
	notes         text
)`, `CREATE INDEX IF NOT EXISTS check_ins_checked_in_on_idx ON check_ins (checked_in_on)`},
	}
}
