package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "workflows/flow.json", false},
		{"absolute", "/tmp/flow.json", false},
		{"parent dir", "../flow.json", false},

		{"empty", "", true},
		{"null byte", "flow\x00.json", true},
		{"newline", "flow\n.json", true},
		{"too long", string(make([]byte, 5000)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateTypeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "LoadImage", false},
		{"with spaces inside", "Load Image", false},
		{"punctuation", "KSampler (Advanced)", false},

		{"empty", "", true},
		{"leading space", " LoadImage", true},
		{"trailing space", "LoadImage ", true},
		{"control", "Load\x01Image", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTypeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTypeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTypeNames(t *testing.T) {
	if err := ValidateTypeNames([]string{"LoadImage", "CLIPTextEncode"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTypeNames(nil); err != nil {
		t.Errorf("nil list: unexpected error: %v", err)
	}
	if err := ValidateTypeNames([]string{"LoadImage", "LoadImage"}); err == nil {
		t.Error("duplicate: expected error")
	}
	if err := ValidateTypeNames([]string{"LoadImage", ""}); err == nil {
		t.Error("empty entry: expected error")
	}
}
