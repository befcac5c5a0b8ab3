package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// CreateRow validates values, assigns a new uuid and inserts the row.
// Returns the new row's id.
func (s *Service) CreateRow(ctx context.Context, tableKey string, values map[string]string) (string, error) {
	def, err := Lookup(tableKey)
	if err != nil {
		return "", err
	}

	cleaned, err := ValidateRecord(def, values, false)
	if err != nil {
		return "", err
	}

	id := uuid.New()
	cols := []string{def.idColumn()}
	args := []any{id}
	for _, spec := range def.FieldSpecs {
		value, ok := cleaned[spec.Column]
		if !ok {
			continue
		}
		cols = append(cols, spec.Column)
		args = append(args, ToDBValue(spec, value))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(tableKey),
		strings.Join(quoteColumns(cols), ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert row: %w", err)
	}

	mutationLogger(ctx, tableKey).Info("row created", "id", id.String())
	return id.String(), nil
}

// UpdateCellRequest contains the data for updating a single cell.
type UpdateCellRequest struct {
	ID     string `json:"id"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// UpdateCell validates and writes one cell. An empty Value stores NULL
// unless the column is required.
func (s *Service) UpdateCell(ctx context.Context, tableKey string, req UpdateCellRequest) error {
	def, err := Lookup(tableKey)
	if err != nil {
		return err
	}

	id := ToPgUUID(req.ID)
	if !id.Valid {
		return fmt.Errorf("update %s: %w", req.ID, ErrRowNotFound)
	}

	cleaned, err := ValidateRecord(def, map[string]string{req.Column: req.Value}, true)
	if err != nil {
		return err
	}
	spec, _ := def.Spec(req.Column)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $1 WHERE %s = $2",
		quoteIdentifier(tableKey),
		quoteIdentifier(spec.Column),
		quoteIdentifier(def.idColumn()),
	)
	tag, err := s.db.Exec(ctx, query, ToDBValue(spec, cleaned[spec.Column]), id)
	if err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s: %w", req.ID, ErrRowNotFound)
	}

	mutationLogger(ctx, tableKey).Info("cell updated", "id", req.ID, "column", spec.Column)
	return nil
}

// DeleteRows deletes rows by id and returns how many were removed.
// Ids that are not valid uuids cannot match a row and are skipped.
func (s *Service) DeleteRows(ctx context.Context, tableKey string, ids []string) (int, error) {
	def, err := Lookup(tableKey)
	if err != nil {
		return 0, err
	}

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if ToPgUUID(id).Valid && !slices.Contains(valid, id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ANY($1::uuid[])",
		quoteIdentifier(tableKey),
		quoteIdentifier(def.idColumn()),
	)
	tag, err := s.db.Exec(ctx, query, valid)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	deleted := int(tag.RowsAffected())
	mutationLogger(ctx, tableKey).Info("rows deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}
