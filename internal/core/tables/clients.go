package tables

import (
	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/grid"
)

// ClientStatuses are the lifecycle states of a coaching client.
var ClientStatuses = []string{"lead", "active", "paused", "churned"}

func clients() core.TableDefinition {
	return core.TableDefinition{
		Info: core.TableInfo{
			Key:   "clients",
			Group: GroupCoaching,
			Label: "Clients",
		},
		IDColumn:    "id",
		OrderBy:     "created_at",
		DefaultSort: grid.SortConfig{Key: "full_name", Direction: grid.SortAscending},
		FieldSpecs: []core.FieldSpec{
			idSpec,
			{Name: "Full name", Column: "full_name", Type: core.FieldText, Required: true, Normalizer: NormalizeName, Width: "200px"},
			{Name: "Email", Column: "email", Type: core.FieldText, Normalizer: NormalizeEmail},
			{Name: "Phone", Column: "phone", Type: core.FieldText, Normalizer: NormalizePhone, Unsortable: true},
			{Name: "State", Column: "state", Type: core.FieldText, Normalizer: NormalizeUsState, Width: "60px"},
			{Name: "Status", Column: "status", Type: core.FieldEnum, Required: true, EnumValues: ClientStatuses},
			{Name: "Goal", Column: "goal", Type: core.FieldText},
			{Name: "Joined", Column: "joined_on", Type: core.FieldDate},
			{Name: "Monthly fee", Column: "monthly_fee", Type: core.FieldNumeric},
			{Name: "Created", Column: "created_at", Type: core.FieldText, Hidden: true},
		},
		Schema: []string{`
CREATE TABLE IF NOT EXISTS clients (
	id          uuid PRIMARY KEY,
	full_name   text NOT NULL,
	email       text UNIQUE,
	phone       text,
	state       text,
	status      text NOT NULL DEFAULT 'lead',
	goal        text,
	joined_on   date,
	monthly_fee numeric(10, 2),
	created_at  timestamptz NOT NULL DEFAULT now()
)`},
	}
}
