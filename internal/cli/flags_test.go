package cli

import (
	"encoding/json"
	"flag"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type parsedConfig struct {
	APIURL         string `json:"api_url"`
	BoardID        string `json:"board_id"`
	GroupID        string `json:"group_id"`
	PageSize       int    `json:"page_size"`
	MaxPages       int    `json:"max_pages"`
	Format         string `json:"format"`
	OutputFile     string `json:"output_file"`
	RequestTimeout string `json:"request_timeout"`
	Verbose        bool   `json:"verbose"`
	ListGroups     bool   `json:"list_groups"`
}

// Test helper that runs in a subprocess and calls ParseFlags safely.
func TestHelperProcess_ParseFlags(t *testing.T) {
	if os.Getenv("GO_WANT_PARSEFLAGS_HELPER") != "1" {
		return
	}

	// Reset global flags and args so our CLI can parse cleanly.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	helperArgs := os.Getenv("GO_HELPER_ARGS")
	if helperArgs != "" {
		os.Args = append([]string{"monday-exporter"}, strings.Fields(helperArgs)...)
	} else {
		os.Args = []string{"monday-exporter"}
	}

	cfg, err := ParseFlags()
	if err != nil {
		_, _ = os.Stderr.WriteString("PARSE_ERROR: " + err.Error() + "\n")
		os.Exit(2)
	}

	b, _ := json.Marshal(parsedConfig{
		APIURL:         cfg.APIURL,
		BoardID:        cfg.BoardID,
		GroupID:        cfg.GroupID,
		PageSize:       cfg.PageSize,
		MaxPages:       cfg.MaxPages,
		Format:         cfg.Format,
		OutputFile:     cfg.OutputFile,
		RequestTimeout: cfg.RequestTimeout.String(),
		Verbose:        cfg.Verbose,
		ListGroups:     cfg.ListGroups,
	})
	_, _ = os.Stdout.WriteString("CFG:" + string(b) + "\n")
	os.Exit(0)
}

// runParseFlags runs ParseFlags in a subprocess so we can capture exit code and output
// even when ParseFlags calls os.Exit (e.g., for --help).
func runParseFlags(t *testing.T, args []string, env map[string]string) (output string, exitCode int) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run", "TestHelperProcess_ParseFlags")

	e := os.Environ()
	e = append(e, "GO_WANT_PARSEFLAGS_HELPER=1")
	e = append(e, "GO_HELPER_ARGS="+strings.Join(args, " "))

	// Clear relevant variables to make behavior deterministic
	keys := []string{
		"MONDAY_API_TOKEN", "MONDAY_API_URL", "MONDAY_API_VERSION", "BOARD_ID", "GROUP_ID",
		"PAGE_SIZE", "MAX_PAGES", "OUTPUT_FILE", "EXPORT_FORMAT", "REQUEST_TIMEOUT",
		"METRICS_FILE", "LOG_LEVEL", "VERBOSE",
	}
	for _, k := range keys {
		e = append(e, k+"=")
	}
	for k, v := range env {
		e = append(e, k+"="+v)
	}
	cmd.Env = e

	out, err := cmd.CombinedOutput()
	output = string(out)

	if err == nil {
		return output, 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return output, ee.ExitCode()
	}
	return output, -1
}

func decodeConfig(t *testing.T, out string) parsedConfig {
	t.Helper()

	idx := strings.Index(out, "CFG:")
	if idx == -1 {
		t.Fatalf("expected CFG: JSON in output, got: %s", out)
	}
	payload := strings.TrimSpace(out[idx+4:])

	var got parsedConfig
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("failed to decode config JSON: %v. Raw: %s", err, payload)
	}
	return got
}

func TestParseFlags_Help_PrintsUsageAndExitsZero(t *testing.T) {
	out, code := runParseFlags(t, []string{"--help"}, nil)

	if code != 0 {
		t.Fatalf("expected exit code 0 for --help, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "VERWENDUNG:") || !strings.Contains(out, "CLI-OPTIONEN:") {
		t.Fatalf("expected usage text with VERWENDUNG and CLI-OPTIONEN, got: %s", out)
	}
	if !strings.Contains(out, "MONDAY_API_TOKEN") {
		t.Fatalf("expected environment variables in usage, got: %s", out)
	}
}

func TestParseFlags_MissingTokenFailsValidation(t *testing.T) {
	out, code := runParseFlags(t, []string{"--board", "123"}, nil)

	if code != 2 {
		t.Fatalf("expected exit code 2 for validation error, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "PARSE_ERROR:") || !strings.Contains(out, "monday API Token fehlt") {
		t.Fatalf("expected validation error about missing token, got: %s", out)
	}
}

func TestParseFlags_InvalidPageSize(t *testing.T) {
	out, code := runParseFlags(t, []string{"--page-size", "501"}, map[string]string{
		"MONDAY_API_TOKEN": "env-token",
		"BOARD_ID":         "123",
	})

	if code != 2 {
		t.Fatalf("expected exit code 2, got %d. Output: %s", code, out)
	}
	if !strings.Contains(out, "page size muss zwischen 1 und 500 liegen") {
		t.Fatalf("expected page size error, got: %s", out)
	}
}

func TestParseFlags_EnvDefaults(t *testing.T) {
	out, code := runParseFlags(t, nil, map[string]string{
		"MONDAY_API_TOKEN": "env-token",
		"BOARD_ID":         "123",
		"GROUP_ID":         "topics",
		"PAGE_SIZE":        "50",
		"EXPORT_FORMAT":    "Markdown",
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d. Output: %s", code, out)
	}

	got := decodeConfig(t, out)
	if got.BoardID != "123" || got.GroupID != "topics" {
		t.Errorf("board/group from env not applied: %+v", got)
	}
	if got.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", got.PageSize)
	}
	if got.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", got.Format)
	}
	if got.APIURL != "https://api.monday.com/v2" {
		t.Errorf("APIURL default = %q", got.APIURL)
	}
	if got.RequestTimeout != "30s" {
		t.Errorf("RequestTimeout default = %q", got.RequestTimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	env := map[string]string{
		"MONDAY_API_TOKEN": "env-token",
		"BOARD_ID":         "env-board",
		"GROUP_ID":         "env-group",
		"OUTPUT_FILE":      "env.csv",
	}
	args := []string{
		"--board", "999",
		"--group", "done",
		"--api-url", "http://localhost:8080/v2",
		"--page-size", "25",
		"--max-pages", "4",
		"--format", "markdown",
		"--output", "out.md",
		"--timeout", "5s",
		"--verbose",
		"--list-groups",
	}

	out, code := runParseFlags(t, args, env)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d. Output: %s", code, out)
	}

	got := decodeConfig(t, out)
	want := parsedConfig{
		APIURL:         "http://localhost:8080/v2",
		BoardID:        "999",
		GroupID:        "done",
		PageSize:       25,
		MaxPages:       4,
		Format:         "markdown",
		OutputFile:     "out.md",
		RequestTimeout: "5s",
		Verbose:        true,
		ListGroups:     true,
	}
	if got != want {
		t.Errorf("config = %+v, want %+v", got, want)
	}
}
