package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yigit/coursehub/internal/bootstrap"
)

func TestRootCommandTree(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"serve", "migrate", "create-admin"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered (got %v, %v)", name, sub, err)
		}
	}

	flag := cmd.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag missing")
	}
	if flag.DefValue != bootstrap.DefaultConfigPath {
		t.Errorf("--config default = %q, want %q", flag.DefValue, bootstrap.DefaultConfigPath)
	}
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"create-admin", "--username", "root"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when --password is missing")
	}
	if !strings.Contains(err.Error(), "password") {
		t.Errorf("error = %v, want mention of the missing flag", err)
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output = %q", out.String())
	}
}
