package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		want      float64
	}{
		{"123", true, 123},
		{"-4.5", true, -4.5},
		{".99", true, 0.99},
		{"$1,299.00", true, 1299},
		{"€49", true, 49},
		{"(12.50)", true, -12.5},
		{"1e3", true, 1000},
		{"", false, 0},
		{"   ", false, 0},
		{"twelve", false, 0},
		{"12kg", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToPgNumeric(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgNumeric(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			f, err := got.Float64Value()
			if err != nil {
				t.Fatalf("Float64Value() error = %v", err)
			}
			if f.Float64 != tt.want {
				t.Errorf("ToPgNumeric(%q) = %v, want %v", tt.input, f.Float64, tt.want)
			}
		})
	}
}

func TestToPgDate(t *testing.T) {
	tests := []struct {
		input string
		want  string // empty means invalid
	}{
		{"2024-03-15", "2024-03-15"},
		{"3/15/2024", "2024-03-15"},
		{"15.03.2024", ""},
		{"Mar 15, 2024", "2024-03-15"},
		{"15 Mar 2024", "2024-03-15"},
		{"20240315", "2024-03-15"},
		{"", ""},
		{"next tuesday", ""},
	}

	for _, tt := range tests {
		got := ToPgDate(tt.input)
		if tt.want == "" {
			if got.Valid {
				t.Errorf("ToPgDate(%q) = %v, want invalid", tt.input, got.Time)
			}
			continue
		}
		if !got.Valid || got.Time.Format(DateLayout) != tt.want {
			t.Errorf("ToPgDate(%q) = %v (valid=%v), want %s", tt.input, got.Time, got.Valid, tt.want)
		}
	}
}

func TestToPgDate_TwoDigitYear(t *testing.T) {
	got := ToPgDate("1/2/99")
	if !got.Valid || got.Time.Year() != 1999 {
		t.Errorf("ToPgDate(1/2/99) = %v, want 1999", got.Time)
	}
	got = ToPgDate("1/2/24")
	if !got.Valid || got.Time.Year() != 2024 {
		t.Errorf("ToPgDate(1/2/24) = %v, want 2024", got.Time)
	}
}

func TestToPgBool(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		want      bool
	}{
		{"yes", true, true},
		{"Y", true, true},
		{"true", true, true},
		{"1", true, true},
		{"no", true, false},
		{"F", true, false},
		{"0", true, false},
		{"", false, false},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got := ToPgBool(tt.input)
		if got.Valid != tt.wantValid || got.Bool != tt.want {
			t.Errorf("ToPgBool(%q) = %+v, want valid=%v bool=%v", tt.input, got, tt.wantValid, tt.want)
		}
	}
}

func TestToPgUUID(t *testing.T) {
	id := uuid.New()
	got := ToPgUUID(id.String())
	if !got.Valid || PgUUIDToString(got) != id.String() {
		t.Errorf("round trip = %q, want %q", PgUUIDToString(got), id.String())
	}
	if ToPgUUID("not-a-uuid").Valid {
		t.Error("ToPgUUID(invalid) should be invalid")
	}
	if PgUUIDToString(pgtype.UUID{}) != "" {
		t.Error("PgUUIDToString(invalid) should be empty")
	}
}

func TestCleanCell(t *testing.T) {
	tests := map[string]string{
		"  Ann  ":  "Ann",
		`="00123"`: "00123",
		"=SUM":     "SUM",
		`"quoted"`: "quoted",
		"'single'": "single",
		"plain":    "plain",
		"":         "",
	}
	for in, want := range tests {
		if got := CleanCell(in); got != want {
			t.Errorf("CleanCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToDBValue(t *testing.T) {
	if v := ToDBValue(FieldSpec{Type: FieldText}, "  "); v != nil {
		t.Errorf("empty input = %v, want nil", v)
	}
	if v, ok := ToDBValue(FieldSpec{Type: FieldNumeric}, "$20").(pgtype.Numeric); !ok || !v.Valid {
		t.Errorf("numeric input = %#v", v)
	}
	if v, ok := ToDBValue(FieldSpec{Type: FieldDate}, "2024-01-31").(pgtype.Date); !ok || !v.Valid {
		t.Errorf("date input = %#v", v)
	}
	if v, ok := ToDBValue(FieldSpec{Type: FieldBool}, "yes").(pgtype.Bool); !ok || !v.Bool {
		t.Errorf("bool input = %#v", v)
	}
	if v, ok := ToDBValue(FieldSpec{Type: FieldEnum}, "active").(pgtype.Text); !ok || v.String != "active" {
		t.Errorf("enum input = %#v", v)
	}
}

func TestFromDB(t *testing.T) {
	id := uuid.New()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	var num pgtype.Numeric
	if err := num.Scan("72.5"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		spec FieldSpec
		in   any
		want any
	}{
		{"nil", FieldSpec{}, nil, nil},
		{"uuid bytes", FieldSpec{}, [16]byte(id), id.String()},
		{"numeric", FieldSpec{Type: FieldNumeric}, num, 72.5},
		{"null numeric", FieldSpec{Type: FieldNumeric}, pgtype.Numeric{}, nil},
		{"date", FieldSpec{Type: FieldDate}, day, "2024-05-06"},
		{"timestamp", FieldSpec{Type: FieldText}, day, "2024-05-06T00:00:00Z"},
		{"int32", FieldSpec{}, int32(7), int64(7)},
		{"text", FieldSpec{}, "Ann", "Ann"},
		{"bool", FieldSpec{Type: FieldBool}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDB(tt.spec, tt.in); got != tt.want {
				t.Errorf("FromDB(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderers(t *testing.T) {
	if got := renderNumber(72.0, nil, 0); got != "72" {
		t.Errorf("renderNumber(72.0) = %q", got)
	}
	if got := renderNumber(0.125, nil, 0); got != "0.125" {
		t.Errorf("renderNumber(0.125) = %q", got)
	}
	if got := renderNumber(nil, nil, 0); got != "" {
		t.Errorf("renderNumber(nil) = %q", got)
	}
	if renderBool(true, nil, 0) != "yes" || renderBool(false, nil, 0) != "no" || renderBool(nil, nil, 0) != "" {
		t.Error("renderBool mismatch")
	}
}
