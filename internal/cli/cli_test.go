package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/models"
	"eve-dashboard/internal/widget"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func writeEve(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eve.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestBuildParser_RegistersCommands(t *testing.T) {
	parser, _, cmds := buildParser("dev")

	assert.NotNil(t, parser.Find("serve"))
	assert.NotNil(t, parser.Find("summarize"))
	assert.NotNil(t, cmds.Serve)
	assert.NotNil(t, cmds.Summarize)
}

func TestRunWithArgs_Help(t *testing.T) {
	out := captureOutput(t, func() {
		assert.NoError(t, RunWithArgs("dev", []string{"--help"}))
	})
	assert.Contains(t, out, "summarize")
}

func TestRunWithArgs_UnknownCommand(t *testing.T) {
	captureOutput(t, func() {
		assert.Error(t, RunWithArgs("dev", []string{"explode"}))
	})
}

func TestSummarize_File(t *testing.T) {
	path := writeEve(t, `[{"alert":{"signature":"X"}},{"alert":{"signature":"Y"}},{"alert":{"signature":"X"}}]`)

	out := captureOutput(t, func() {
		require.NoError(t, RunWithArgs("dev", []string{"summarize", "--file", path}))
	})

	assert.Contains(t, out, "Alerts by Signature")
	assert.Contains(t, out, "hsl(0, 70%, 50%)")
	assert.Contains(t, out, "Total: 3 alerts, 2 signatures")
}

func TestSummarize_JSONLines(t *testing.T) {
	path := writeEve(t, "{\"alert\":{\"signature\":\"A\"}}\n{\"event_type\":\"flow\"}\n{\"alert\":{\"signature\":\"A\"}}\n")

	out := captureOutput(t, func() {
		require.NoError(t, RunWithArgs("dev", []string{"summarize", "--file", path, "--format", "lines", "--json"}))
	})

	var resp models.SignaturesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ready", resp.State)
	assert.Equal(t, []string{"A"}, resp.Labels)
	assert.Equal(t, []int{2}, resp.Counts)
}

func TestSummarize_NotAnArray(t *testing.T) {
	path := writeEve(t, `{}`)

	var err error
	out := captureOutput(t, func() {
		err = RunWithArgs("dev", []string{"summarize", "--file", path})
	})

	require.Error(t, err)
	assert.Equal(t, "Fetched data is not an array", err.Error())
	assert.Contains(t, out, "Error: Fetched data is not an array")
}

func TestSummarize_InvalidSource(t *testing.T) {
	captureOutput(t, func() {
		assert.Error(t, RunWithArgs("dev", []string{"summarize", "--source", "kafka"}))
	})
}

func TestSummarize_PrintEmpty(t *testing.T) {
	cmd := &SummarizeCommand{}
	var buf bytes.Buffer

	require.NoError(t, cmd.print(&buf, widget.Snapshot{State: widget.Ready}))
	assert.Contains(t, buf.String(), "No alerts with a signature")
}

func TestSummarize_PrintJSONEmptyArrays(t *testing.T) {
	cmd := &SummarizeCommand{JSON: true}
	var buf bytes.Buffer

	require.NoError(t, cmd.print(&buf, widget.Snapshot{State: widget.Ready}))
	assert.JSONEq(t, `{"state":"ready","labels":[],"counts":[],"colors":[],"total":0}`, buf.String())
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &SummarizeCommand{File: "/tmp/eve.json", Format: "lines"}

	cmd.applyOverrides(cfg)

	assert.Equal(t, config.SourceFile, cfg.Source.Kind)
	assert.Equal(t, "/tmp/eve.json", cfg.Source.File)
	assert.Equal(t, config.FormatLines, cfg.Source.Format)
}

func TestServeOverrides_AddrKeepsDefaultSourceSameOrigin(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &ServeCommand{Addr: ":9090"}

	cmd.applyOverrides(cfg)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:9090/eve.json", cfg.Source.URL)
}

func TestServeOverrides_EnvAddr(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:7070")

	cfg, err := loadConfig(&GlobalFlags{}, io.Discard)
	require.NoError(t, err)
	(&ServeCommand{}).applyOverrides(cfg)

	assert.Equal(t, "http://127.0.0.1:7070/eve.json", cfg.Source.URL)
	assert.NoError(t, cfg.Validate())
}

func TestOpenLoader_File(t *testing.T) {
	path := writeEve(t, `[{"alert":{"signature":"F"}}]`)
	cfg := config.DefaultConfig().Source
	cfg.Kind = config.SourceFile
	cfg.File = path

	l, err := openLoader(context.Background(), cfg, 3)
	require.NoError(t, err)
	assert.Equal(t, "file", l.Name())

	records, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestOpenLoader_UnknownKind(t *testing.T) {
	cfg := config.DefaultConfig().Source
	cfg.Kind = "kafka"

	_, err := openLoader(context.Background(), cfg, 3)
	assert.Error(t, err)
}
