package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peerlens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "123456:ABC-secret")

	path := writeTempConfig(t, `
version: "1"
modules:
  backend.botapi:
    token: ${TEST_BOT_TOKEN}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1")
	}

	node, ok := cfg.Modules["backend.botapi"]
	if !ok {
		t.Fatal("module backend.botapi missing from config")
	}
	var mod struct {
		Token string `yaml:"token"`
	}
	if err := node.Decode(&mod); err != nil {
		t.Fatalf("decode module node: %v", err)
	}
	if mod.Token != "123456:ABC-secret" {
		t.Errorf("Token = %q, want expanded env value", mod.Token)
	}
}

func TestLoadDefaultValue(t *testing.T) {
	path := writeTempConfig(t, `
version: "1"
modules:
  gateway.http:
    bind: ${PEERLENS_BIND:-127.0.0.1:8080}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	var mod struct {
		Bind string `yaml:"bind"`
	}
	node := cfg.Modules["gateway.http"]
	if err := node.Decode(&mod); err != nil {
		t.Fatalf("decode module node: %v", err)
	}
	if mod.Bind != "127.0.0.1:8080" {
		t.Errorf("Bind = %q, want default value", mod.Bind)
	}
}

func TestLoadUnresolvedVariable(t *testing.T) {
	path := writeTempConfig(t, `
version: "1"
modules:
  backend.botapi:
    token: ${DEFINITELY_NOT_SET_ANYWHERE_XYZ}
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "DEFINITELY_NOT_SET_ANYWHERE_XYZ") {
		t.Errorf("error = %q, want variable name mentioned", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestResolveSortsModuleIDs(t *testing.T) {
	path := writeTempConfig(t, `
version: "1"
modules:
  gateway.http: {}
  backend.mtproto: {}
  backend.botapi: {}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ids := Resolve(cfg)
	want := []string{"backend.botapi", "backend.mtproto", "gateway.http"}
	if len(ids) != len(want) {
		t.Fatalf("Resolve() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
