// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Environment variables understood by RunHelperProcess.
const (
	HelperProcessEnv = "GO_WANT_HELPER_PROCESS"
	HelperExitEnv    = "GO_HELPER_EXIT_CODE"
	HelperStdoutEnv  = "GO_HELPER_STDOUT"
	HelperStderrEnv  = "GO_HELPER_STDERR"
	// HelperEchoArgsEnv makes the helper print its argv, one per line.
	HelperEchoArgsEnv = "GO_HELPER_ECHO_ARGS"
	// HelperPrintEnvEnv names a variable whose value the helper prints.
	HelperPrintEnvEnv = "GO_HELPER_PRINT_ENV"
)

type (
	// CommandRecorder captures the commands a component would start and
	// replaces them with the test binary running TestHelperProcess.
	// Each test package using it must declare:
	//
	//	func TestHelperProcess(*testing.T) { testutil.RunHelperProcess() }
	CommandRecorder struct {
		mu          sync.Mutex
		invocations []Invocation

		// ExitCode is the exit code of every faked command.
		ExitCode int
		// Stdout is written to stdout by every faked command.
		Stdout string
		// Stderr is written to stderr by every faked command.
		Stderr string
		// EchoArgs makes faked commands print their argv to stdout.
		EchoArgs bool
		// PrintEnv makes faked commands print the value of this variable.
		PrintEnv string
	}

	// Invocation is one recorded command.
	Invocation struct {
		Name string
		Args []string
	}
)

// NewCommandRecorder creates a recorder whose commands succeed silently.
func NewCommandRecorder() *CommandRecorder {
	return &CommandRecorder{}
}

// CommandFunc returns an exec.CommandContext replacement that records the
// invocation and returns a command running the helper process.
func (m *CommandRecorder) CommandFunc(t testing.TB) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		m.mu.Lock()
		m.invocations = append(m.invocations, Invocation{Name: name, Args: slices.Clone(args)})
		m.mu.Unlock()

		cs := append([]string{"-test.run=^TestHelperProcess$", "--", name}, args...)
		//nolint:gosec // test helper re-executes the test binary
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(),
			HelperProcessEnv+"=1",
			HelperExitEnv+"="+strconv.Itoa(m.ExitCode),
			HelperStdoutEnv+"="+m.Stdout,
			HelperStderrEnv+"="+m.Stderr,
			HelperPrintEnvEnv+"="+m.PrintEnv,
		)
		if m.EchoArgs {
			cmd.Env = append(cmd.Env, HelperEchoArgsEnv+"=1")
		}
		return cmd
	}
}

// Invocations returns a copy of every recorded invocation.
func (m *CommandRecorder) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.invocations)
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *CommandRecorder) LastInvocation() *Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.invocations) == 0 {
		return nil
	}
	inv := m.invocations[len(m.invocations)-1]
	return &inv
}

// LastArgs returns the arguments from the most recent invocation.
func (m *CommandRecorder) LastArgs() []string {
	if inv := m.LastInvocation(); inv != nil {
		return inv.Args
	}
	return nil
}

// AssertInvocationCount verifies the number of recorded commands.
func (m *CommandRecorder) AssertInvocationCount(t testing.TB, expected int) {
	t.Helper()
	if got := len(m.Invocations()); got != expected {
		t.Errorf("expected %d invocations, got %d", expected, got)
	}
}

// AssertLastCommand verifies the name and exact argv of the last command.
func (m *CommandRecorder) AssertLastCommand(t testing.TB, name string, args ...string) {
	t.Helper()
	inv := m.LastInvocation()
	if inv == nil {
		t.Fatalf("expected command %s %v but no commands were invoked", name, args)
	}
	if inv.Name != name {
		t.Errorf("command name = %q, want %q", inv.Name, name)
	}
	if !slices.Equal(inv.Args, args) {
		t.Errorf("command args = %q, want %q", inv.Args, args)
	}
}

// HasArgPair checks if the last invocation contains a flag-value pair.
func (m *CommandRecorder) HasArgPair(flag, value string) bool {
	args := m.LastArgs()
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

// RunHelperProcess implements the faked command. It returns immediately
// unless the process was started by a CommandRecorder.
func RunHelperProcess() {
	if os.Getenv(HelperProcessEnv) != "1" {
		return
	}

	if os.Getenv(HelperEchoArgsEnv) == "1" {
		args := os.Args
		for i, a := range args {
			if a == "--" {
				args = args[i+1:]
				break
			}
		}
		fmt.Fprintln(os.Stdout, strings.Join(args, "\n"))
	}
	if key := os.Getenv(HelperPrintEnvEnv); key != "" {
		fmt.Fprintln(os.Stdout, os.Getenv(key))
	}
	if stdout := os.Getenv(HelperStdoutEnv); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv(HelperStderrEnv); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	code, _ := strconv.Atoi(os.Getenv(HelperExitEnv))
	os.Exit(code)
}
