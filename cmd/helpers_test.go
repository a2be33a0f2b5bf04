package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iksnae/studymind/internal"
	"github.com/iksnae/studymind/testutil"
)

const testUser = "tester"

// testEnv runs commands against a fake backend and a throwaway state directory
type testEnv struct {
	t       *testing.T
	backend *testutil.FakeBackend
	state   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"STUDYMIND_BACKEND_URL", "STUDYMIND_USER_ID", "STUDYMIND_STATE_PATH",
		"STUDYMIND_TIMEOUT", "STUDYMIND_MARKDOWN", "STUDYMIND_MAX_RESPONSE_BYTES",
	} {
		t.Setenv(k, "")
	}
	return &testEnv{
		t:       t,
		backend: testutil.NewFakeBackend(t),
		state:   t.TempDir(),
	}
}

// run executes studymind with the environment's backend, user and state
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	full := append([]string{"--backend", e.backend.URL(), "--user", testUser, "--state", e.state}, args...)
	return execute(e.t, full...)
}

// store opens the environment's state database
func (e *testEnv) store() *internal.Storage {
	e.t.Helper()
	path := filepath.Join(e.state, "state.db")
	db, err := internal.OpenDatabase(path)
	if err != nil {
		e.t.Fatalf("OpenDatabase() error = %v", err)
	}
	s := internal.NewStorage(db, path)
	e.t.Cleanup(func() { _ = s.Close() })
	return s
}

// execute runs the root command with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), err
}

// resetFlags puts every flag back to its default so runs do not leak into each other
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
