package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"goaltrack/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"goaltrack": func() int { main(); return 0 },
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, "home")
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			env.Setenv("HOME", home)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"remoteserver": cmdRemoteServer(t),
		},
	})
}

// cmdRemoteServer starts a REST server accepting TOKEN and points
// DIR/config.toml at it.
func cmdRemoteServer(t *testing.T) func(ts *testscript.TestScript, neg bool, args []string) {
	return func(ts *testscript.TestScript, neg bool, args []string) {
		if neg {
			ts.Fatalf("remoteserver does not support negation")
		}
		if len(args) != 2 {
			ts.Fatalf("usage: remoteserver TOKEN DIR")
		}

		server := testutil.NewRemoteServer(t, args[0])
		dir := ts.MkAbs(args[1])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			ts.Fatalf("create %s: %v", dir, err)
		}
		conf := fmt.Sprintf("[remote]\nbackend = \"rest\"\nendpoint = %q\n", server.URL)
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(conf), 0o600); err != nil {
			ts.Fatalf("write config: %v", err)
		}
	}
}
