package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ host, port, core, user, password string }{
		flagHost, flagPort, flagCore, flagUser, flagPassword,
	}
	t.Cleanup(func() {
		flagHost = orig.host
		flagPort = orig.port
		flagCore = orig.core
		flagUser = orig.user
		flagPassword = orig.password
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// clearSolrEnv unsets every environment variable resolveConfig reads.
func clearSolrEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SOLR_HOST", "SOLR_PORT", "SOLR_CORE", "SOLR_USER", "SOLR_PASSWORD"} {
		unsetEnv(t, key)
	}
}

// TestResolveConfigEnvHost verifies that SOLR_HOST fills an empty host flag.
func TestResolveConfigEnvHost(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)
	setEnv(t, "SOLR_HOST", "env-host")
	setEnv(t, "HOME", t.TempDir())

	flagHost = ""
	resolveConfig()

	if flagHost != "env-host" {
		t.Errorf("flagHost: got %q, want %q", flagHost, "env-host")
	}
}

// TestResolveConfigFlagTakesPrecedenceOverEnv verifies that an explicit flag
// value is not overridden by the environment variable.
func TestResolveConfigFlagTakesPrecedenceOverEnv(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)
	setEnv(t, "SOLR_HOST", "env-host")
	setEnv(t, "HOME", t.TempDir())

	flagHost = "flag-host"
	resolveConfig()

	if flagHost != "flag-host" {
		t.Errorf("explicit flag should win; got %q", flagHost)
	}
}

// TestResolveConfigFile verifies that ~/.solr-node/config.yaml fills empty
// flags.
func TestResolveConfigFile(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".solr-node")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgContent := "host: file-host\nport: \"8984\"\ncore: file-core\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	flagHost, flagPort, flagCore = "", "", ""
	resolveConfig()

	if flagHost != "file-host" {
		t.Errorf("flagHost from file: got %q, want %q", flagHost, "file-host")
	}
	if flagPort != "8984" {
		t.Errorf("flagPort from file: got %q, want %q", flagPort, "8984")
	}
	if flagCore != "file-core" {
		t.Errorf("flagCore from file: got %q, want %q", flagCore, "file-core")
	}
}

// TestResolveConfigEnvNotOverriddenByFile verifies that env vars take
// precedence over config file values.
func TestResolveConfigEnvNotOverriddenByFile(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)
	setEnv(t, "SOLR_CORE", "env-core")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".solr-node")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("core: file-core\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagCore = ""
	resolveConfig()

	if flagCore != "env-core" {
		t.Errorf("flagCore should be env value; got %q", flagCore)
	}
}

// TestResolveConfigMissingFile verifies that a missing config file is silently
// ignored and flag defaults are unchanged.
func TestResolveConfigMissingFile(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)
	setEnv(t, "HOME", t.TempDir())

	flagHost = ""
	resolveConfig() // must not panic

	if flagHost != "" {
		t.Errorf("flagHost should stay empty; got %q", flagHost)
	}
}

// TestResolveConfigInvalidYAML verifies that a malformed config file is
// silently ignored.
func TestResolveConfigInvalidYAML(t *testing.T) {
	resetFlags(t)
	clearSolrEnv(t)

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)

	cfgDir := filepath.Join(tmp, ".solr-node")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(":::not-yaml:::"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagHost = ""
	resolveConfig() // must not panic

	if flagHost != "" {
		t.Errorf("flagHost should stay empty on bad YAML; got %q", flagHost)
	}
}

// TestApplyConfigFile verifies that only empty flags pick up file values.
func TestApplyConfigFile(t *testing.T) {
	resetFlags(t)

	flagHost = "preset"
	flagPort = ""

	applyConfigFile(&configFile{Host: "file-host", Port: "9999"})

	if flagHost != "preset" {
		t.Errorf("preset flag overridden: got %q", flagHost)
	}
	if flagPort != "9999" {
		t.Errorf("empty flag not filled: got %q", flagPort)
	}
}

// TestUpdateOptions verifies the commit flag combinations.
func TestUpdateOptions(t *testing.T) {
	cases := []struct {
		noCommit bool
		soft     bool
		within   int
		commit   bool
	}{
		{false, false, 0, true},
		{true, false, 0, false},
		{false, true, 0, false},
		{false, false, 5000, false},
	}
	for i, c := range cases {
		opts := updateOptions(c.noCommit, c.soft, c.within)
		if opts.Commit != c.commit {
			t.Errorf("case %d: Commit got %v, want %v", i, opts.Commit, c.commit)
		}
		if opts.SoftCommit != c.soft {
			t.Errorf("case %d: SoftCommit got %v, want %v", i, opts.SoftCommit, c.soft)
		}
		if opts.CommitWithin != c.within {
			t.Errorf("case %d: CommitWithin got %v, want %v", i, opts.CommitWithin, c.within)
		}
	}
}

// TestReadInputFile verifies reading documents from a file path.
func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	if err := os.WriteFile(path, []byte(`{"id":"1"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("got %q", data)
	}
}

// TestReadInputMissingFile verifies the error for a missing path.
func TestReadInputMissingFile(t *testing.T) {
	if _, err := readInput(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
