package core

// rowfile.go decodes row collections from files for offline grid runs.
// JSON input is an array of objects. CSV input uses its first record as the
// field names; cells that look like numbers become json.Number so they sort
// numerically. Both formats tolerate a UTF-8 byte order mark, and invalid
// UTF-8 is replaced with U+FFFD.

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// RowFormat selects how DecodeRows parses its input.
type RowFormat string

const (
	FormatJSON RowFormat = "json"
	FormatCSV  RowFormat = "csv"
)

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) RowFormat {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// sanitize strips a leading BOM and replaces ill-formed UTF-8.
func sanitize(r io.Reader) io.Reader {
	t := transform.Chain(unicode.BOMOverride(transform.Nop), runes.ReplaceIllFormed())
	return transform.NewReader(r, t)
}

// DecodeRows reads a row collection in the given format.
func DecodeRows(r io.Reader, format RowFormat) ([]grid.Map, error) {
	r = sanitize(r)
	switch format {
	case FormatJSON:
		return decodeJSONRows(r)
	case FormatCSV:
		return decodeCSVRows(r)
	default:
		return nil, fmt.Errorf("unsupported row format %q", format)
	}
}

func decodeJSONRows(r io.Reader) ([]grid.Map, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}
	rows := make([]grid.Map, len(raw))
	for i, m := range raw {
		rows[i] = grid.Map(m)
	}
	return rows, nil
}

func decodeCSVRows(r io.Reader) ([]grid.Map, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []grid.Map{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}
	for i, h := range header {
		header[i] = CleanCell(h)
	}

	var rows []grid.Map
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}

		row := make(grid.Map, len(header))
		for i, key := range header {
			if i >= len(record) {
				break
			}
			row[key] = csvValue(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// csvValue turns an empty cell into nil and numeric text into json.Number.
func csvValue(cell string) any {
	cell = CleanCell(cell)
	switch {
	case cell == "":
		return nil
	case numericRegex.MatchString(cell):
		return json.Number(cell)
	default:
		return cell
	}
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
