// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"grugjust/pkg/types"
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the recipe ran and exited 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// resultFromRun converts the error of exec.Cmd.Run into a Result.
// Start failures are passed to wrap, which may attach context.
func resultFromRun(err error, wrap func(error) error) *Result {
	code, startErr := types.ExitCodeFromError(err)
	if startErr != nil {
		if wrap != nil {
			startErr = wrap(startErr)
		}
		return NewErrorResult(code, startErr)
	}
	return NewExitCodeResult(code)
}
