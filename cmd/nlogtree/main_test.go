package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlogtree/config"
	"github.com/philipp01105/nlogtree/logger"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	mode := logger.Hierarchical()
	stack := logger.StackTraceLevel()
	rootLevel := logger.Root().Level()
	t.Cleanup(func() {
		logger.SetHierarchical(true)
		for _, l := range logger.Attached() {
			if !l.IsRoot() {
				_ = l.ClearLevel()
			}
		}
		logger.SetHierarchical(mode)
		logger.SetStackTraceLevel(stack)
		_ = logger.Root().SetLevel(rootLevel)
	})

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmit(t *testing.T) {
	out, err := run(t, "emit", "app.db", "INFO", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] app.db: hello world")
}

func TestEmit_Filtered(t *testing.T) {
	out, err := run(t, "--level", "WARN", "emit", "app", "INFO", "quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEmit_ErrorAndScope(t *testing.T) {
	out, err := run(t, "emit", "app", "ERROR", "failed", "--error", "disk full", "--scope")
	require.NoError(t, err)
	assert.Contains(t, out, `error="disk full"`)
	assert.Contains(t, out, "scope=")
}

func TestEmit_Hierarchical(t *testing.T) {
	out, err := run(t, "--hierarchical", "--set", "app.db=DEBUG", "emit", "app.db.pool", "DEBUG", "pool stats")
	require.NoError(t, err)
	assert.Contains(t, out, "[DEBUG] app.db.pool: pool stats")

	out, err = run(t, "--hierarchical", "--set", "app.db=DEBUG", "emit", "app.http", "DEBUG", "filtered")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEmit_SetNeedsHierarchicalMode(t *testing.T) {
	_, err := run(t, "--set", "app=DEBUG", "emit", "app", "INFO", "x")
	assert.ErrorIs(t, err, logger.ErrUnsupported)
}

func TestEmit_Formats(t *testing.T) {
	out, err := run(t, "--format", "json", "emit", "svc", "WARN", "as json")
	require.NoError(t, err)
	assert.Contains(t, out, `"logger":"svc"`)
	assert.Contains(t, out, `"message":"as json"`)

	out, err = run(t, "--format", "zap", "emit", "svc", "WARN", "via zap")
	require.NoError(t, err)
	assert.Contains(t, out, `"logger":"svc"`)
	assert.Contains(t, out, `"msg":"via zap"`)
	assert.Contains(t, out, `"level":"warn"`)

	_, err = run(t, "--format", "xml", "emit", "svc", "WARN", "nope")
	assert.Error(t, err)
}

func TestEmit_InvalidArgs(t *testing.T) {
	_, err := run(t, "emit", "a..b", "INFO", "x")
	assert.ErrorIs(t, err, logger.ErrInvalidName)

	_, err = run(t, "emit", "a", "LOUD", "x")
	assert.Error(t, err)

	_, err = run(t, "emit", "a", "INFO")
	assert.Error(t, err)
}

func TestEmit_StackLevel(t *testing.T) {
	out, err := run(t, "--stack-level", "ERROR", "emit", "app", "ERROR", "boom")
	require.NoError(t, err)
	assert.Contains(t, out, "stack trace captured")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hierarchical: true\nlevel: ERROR\nloggers:\n  - name: app.db\n    level: VERBOSE\n"), 0644))

	out, err := run(t, "--config", path, "emit", "app.db", "VERBOSE", "from config")
	require.NoError(t, err)
	assert.Contains(t, out, "[VERBOSE] app.db: from config")

	out, err = run(t, "--config", path, "emit", "app", "WARN", "below root")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "tree")
	assert.Error(t, err)
}

func TestEmit_Template(t *testing.T) {
	out, err := run(t, "--format", "template", "--template", `{{ .Level.Name | lower }}|{{ .LoggerName }}|{{ .Message | upper }}`, "emit", "tpl", "INFO", "hi there")
	require.NoError(t, err)
	assert.Equal(t, "info|tpl|HI THERE\n", out)

	_, err = run(t, "--format", "template", "--template", "{{ .Message", "emit", "tpl", "INFO", "x")
	assert.Error(t, err)
}

func TestEmit_Filter(t *testing.T) {
	args := []string{"--hierarchical", "--level", "DEBUG", "--filter", `logger startsWith "svc.db"`, "emit"}

	out, err := run(t, append(args, "svc.db.pool", "DEBUG", "kept")...)
	require.NoError(t, err)
	assert.Contains(t, out, "kept")

	out, err = run(t, append(args, "svc.http", "ERROR", "dropped")...)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--filter", "level >=", "emit", "svc", "INFO", "x")
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("NLOGTREE_LEVEL", "ERROR")
	out, err := run(t, "emit", "env", "WARN", "filtered by env")
	require.NoError(t, err)
	assert.Empty(t, out)

	// Flags win over the environment.
	out, err = run(t, "--level", "INFO", "emit", "env", "WARN", "shown")
	require.NoError(t, err)
	assert.Contains(t, out, "shown")
}

func TestEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NLOGTREE_FORMAT=json\nNLOGTREE_HIERARCHICAL=true\nNLOGTREE_SET=envfile.a=VERBOSE\n"), 0644))
	t.Cleanup(func() {
		for _, k := range []string{"NLOGTREE_FORMAT", "NLOGTREE_HIERARCHICAL", "NLOGTREE_SET"} {
			os.Unsetenv(k)
		}
	})

	out, err := run(t, "--env-file", path, "emit", "envfile.a.b", "VERBOSE", "from env file")
	require.NoError(t, err)
	assert.Contains(t, out, `"level":"VERBOSE"`)
	assert.Contains(t, out, `"message":"from env file"`)

	_, err = run(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "tree")
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	out, err := run(t, "--hierarchical", "--set", "tree.a=WARN", "tree", "tree.a.x", "tree.b")
	require.NoError(t, err)

	assert.Contains(t, out, "mode: hierarchical")
	assert.Contains(t, out, "LOGGER")
	assert.Contains(t, out, "<root>")
	assert.Regexp(t, `\n\s+a\s+WARN\s+WARN\n`, out)
	assert.Regexp(t, `\n\s+x\s+WARN\s+-\n`, out)
	assert.Regexp(t, `\n\s+b\s+INFO\s+-\n`, out)
}

func TestTree_Pretty(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	out, err := run(t, "--hierarchical", "--set", "pretty.a=ERROR", "tree", "--pretty", "pretty.a.b")
	require.NoError(t, err)
	assert.Contains(t, out, "LOGGER")
	assert.Contains(t, out, "pretty")
	assert.Regexp(t, `\s+b\s+\|\s+ERROR\s+\|\s+-`, out)
}

func TestEmit_Pretty(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	out, err := run(t, "--format", "pretty", "emit", "app", "WARN", "careful")
	require.NoError(t, err)
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "app: careful")
}

func TestTree_YAML(t *testing.T) {
	out, err := run(t, "--hierarchical", "--level", "DEBUG", "--set", "yaml.a=ERROR", "tree", "--yaml")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.True(t, cfg.Hierarchical)
	assert.Equal(t, "DEBUG", cfg.Level)
	assert.Contains(t, cfg.Loggers, config.Logger{Name: "yaml.a", Level: "ERROR"})
}

func TestWatch_NeedsConfig(t *testing.T) {
	_, err := run(t, "watch")
	assert.Error(t, err)
}
