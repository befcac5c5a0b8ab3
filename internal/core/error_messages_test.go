package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"duplicate key", errors.New(`ERROR: duplicate key value violates unique constraint "clients_pkey"`), "DB001"},
		{"unique constraint", errors.New("unique constraint violated"), "DB002"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB004"},
		{"deadline before timeout", fmt.Errorf("load rows: %w", context.DeadlineExceeded), "REQ002"},
		{"cancelled", fmt.Errorf("load rows: %w", context.Canceled), "REQ001"},
		{"plain timeout", errors.New("i/o timeout"), "DB006"},
		{"wrapped table not found", fmt.Errorf("query: %w: coaches", ErrTableNotFound), "TBL001"},
		{"session not found", fmt.Errorf("apply: %w", ErrSessionNotFound), "GRID001"},
		{"too many sessions", ErrTooManySessions, "GRID002"},
		{"invalid action", fmt.Errorf("%w: %q", ErrInvalidAction, "shuffle"), "GRID003"},
		{"row not found", ErrRowNotFound, "GRID004"},
		{"required field", ValidationErrors{{Field: "full_name", Message: "required field is empty"}}, "VAL003"},
		{"enum", ValidationError{Field: "status", Message: "invalid enum: value must be one of a, b"}, "VAL006"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("DUPLICATE KEY value"), "DB001"},
		{"unknown", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q (message %q)", got.Code, tt.wantCode, got.Message)
			}
			if tt.err != nil && got.Action == "" {
				t.Error("MapError() action should not be empty")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrSessionNotFound)
	want := "Grid session not found (Code: GRID001). The session may have expired. Open the table again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrRowNotFound) {
		t.Error("ErrRowNotFound should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unmatched error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}
