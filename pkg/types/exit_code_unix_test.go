// SPDX-License-Identifier: MPL-2.0

//go:build unix

package types

import (
	"os/exec"
	"testing"
)

func TestExitCodeFromError_Signalled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		signal string
		want   ExitCode
	}{
		{"INT", 130},
		{"TERM", 143},
	}

	for _, tt := range tests {
		t.Run(tt.signal, func(t *testing.T) {
			t.Parallel()
			cmd := exec.Command("sh", "-c", "kill -"+tt.signal+" $$")
			code, err := ExitCodeFromError(cmd.Run())
			if err != nil {
				t.Fatalf("unexpected infrastructure error: %v", err)
			}
			if code != tt.want {
				t.Errorf("code = %d, want %d", code, tt.want)
			}
		})
	}
}
