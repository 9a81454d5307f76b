package errors

import (
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid ipuz", "monday.ipuz", false},
		{"valid pdf", "monday.pdf", false},
		{"valid with spaces", "sunday special.ipuz", false},
		{"valid hidden", ".draft.ipuz", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"slash", "sub/monday.ipuz", true},
		{"traversal", "../monday.ipuz", true},
		{"backslash", "sub\\monday.ipuz", true},
		{"null byte", "foo\x00.ipuz", true},
		{"newline", "foo\n.ipuz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := map[string]bool{"pdf": true, "json": true}

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"pdf", false},
		{"json", false},
		{"", true},
		{"svg", true},
		{"PDF", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input, valid)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
