package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matzehuels/flowlayout/pkg/dag"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidConfig, "gap_x must be >= 0, got %v", -1), "INVALID_CONFIG: gap_x must be >= 0, got -1"},
		{"wrapped", Wrap(ErrCodeCycleDetected, dag.ErrCycleDetected, "layering"), "CYCLE_DETECTED: layering: " + dag.ErrCycleDetected.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", Wrap(ErrCodeCycleDetected, dag.ErrCycleDetected, "layering"))

	if !errors.Is(err, dag.ErrCycleDetected) {
		t.Error("sentinel lost through Wrap")
	}
	if !Is(err, ErrCodeCycleDetected) || Is(err, ErrCodeInvalidColumns) {
		t.Error("Is matched the wrong code")
	}
	if GetCode(err) != ErrCodeCycleDetected {
		t.Errorf("GetCode() = %q", GetCode(err))
	}
	if UserMessage(err) != "layering" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
}

func TestPlainErrors(t *testing.T) {
	plain := errors.New("plain")
	if Is(plain, ErrCodeInternal) || Is(nil, ErrCodeInternal) {
		t.Error("Is matched an error without a code")
	}
	if GetCode(plain) != "" || GetCode(nil) != "" {
		t.Error("GetCode returned a code for an uncoded error")
	}
	if UserMessage(plain) != "plain" {
		t.Errorf("UserMessage() = %q", UserMessage(plain))
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("boom"), 1},
		{"config", New(ErrCodeInvalidConfig, "bad"), 2},
		{"document", New(ErrCodeInvalidDocument, "bad"), 2},
		{"missing file", New(ErrCodeFileNotFound, "nope"), 2},
		{"cycle", New(ErrCodeCycleDetected, "cycle"), 3},
		{"columns", New(ErrCodeInvalidColumns, "dup"), 3},
		{"cache", New(ErrCodeCache, "down"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
