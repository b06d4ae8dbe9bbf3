package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's real config and todo file out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TODO_FILE", "TODO_THEME", "TODO_LOG_LEVEL", "TODO_ON_MALFORMED", "TODO_GROUP"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return home
}

type result struct {
	code           int
	stdout, stderr string
}

func run(args ...string) result {
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

func todoFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "todo.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return p
}

func TestRun_NoArgsPrintsHint(t *testing.T) {
	isolate(t)
	r := run()
	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, "You need to pass some arguments.\nUse `todo help` to get a list of arguments\n", r.stdout)
}

func TestRun_Help(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{{"help"}, {"--help"}, {"-h"}, {"get", "--help"}} {
		r := run(args...)
		assert.Equal(t, ExitOK, r.code, "args %v", args)
		assert.Contains(t, r.stdout, "edit <index> \"Some text\"")
		assert.Contains(t, r.stdout, "Indexes start at 0")
	}
}

func TestRun_UnknownCommandIsSilentNoop(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - keep\n")

	r := run("--file", p, "frobnicate", "7")

	assert.Equal(t, ExitOK, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
	assert.Equal(t, "[ ] - keep\n", readFile(t, p))
}

func TestRun_GetMissingFileStartsEmpty(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "todo.txt")

	r := run("-f", p, "get")

	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, "Couldn't read the todo file, creating a new todolist.\n", r.stdout)
	assert.NoFileExists(t, p)
}

func TestRun_AddThenGet(t *testing.T) {
	isolate(t)
	p := todoFile(t, "")

	r := run("-f", p, "--theme", "mono", "add", "Buy", "milk")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "ok: added")
	assert.Equal(t, "[ ] - Buy milk\n", readFile(t, p))

	r = run("-f", p, "get")
	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, "0 [ ] - Buy milk\n", r.stdout)
}

func TestRun_DefaultFileInHome(t *testing.T) {
	home := isolate(t)

	r := run("add", "Buy milk")

	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Equal(t, "[ ] - Buy milk\n", readFile(t, filepath.Join(home, "todo.txt")))
}

func TestRun_FileFromEnv(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[x] - from env\n")
	t.Setenv("TODO_FILE", p)

	r := run("get")

	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, "0 [x] - from env\n", r.stdout)
}

func TestRun_CheckUncheck(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - A\n[x] - B\n")

	require.Equal(t, ExitOK, run("-f", p, "check", "0").code)
	require.Equal(t, ExitOK, run("-f", p, "uncheck", "1").code)

	assert.Equal(t, "[x] - A\n[ ] - B\n", readFile(t, p))
}

func TestRun_DeleteRenumbers(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - A\n[ ] - B\n")

	r := run("-f", p, "delete", "0")
	require.Equal(t, ExitOK, r.code)

	r = run("-f", p, "get")
	assert.Equal(t, "0 [ ] - B\n", r.stdout)
}

func TestRun_EditPersists(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[x] - old text\n")

	r := run("-f", p, "edit", "0", "new", "text")

	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Equal(t, "[x] - new text\n", readFile(t, p))
}

func TestRun_IndexOutOfRange(t *testing.T) {
	isolate(t)
	const content = "[ ] - A\n[ ] - B\n"
	for _, cmd := range [][]string{{"check", "5"}, {"uncheck", "5"}, {"delete", "2"}, {"edit", "9", "x"}} {
		t.Run(cmd[0], func(t *testing.T) {
			p := todoFile(t, content)

			r := run(append([]string{"-f", p}, cmd...)...)

			assert.Equal(t, ExitUsage, r.code)
			assert.Contains(t, r.stderr, "index out of range: have 2, got")
			assert.Contains(t, r.stderr, "todo get")
			assert.Equal(t, content, readFile(t, p), "file must be untouched")
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - A\n")
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "index not a number", args: []string{"check", "first"}, wantErr: "check: not a number: first"},
		{name: "missing index", args: []string{"delete"}, wantErr: "usage: todo delete <index>"},
		{name: "too many indexes", args: []string{"uncheck", "0", "1"}, wantErr: "usage: todo uncheck <index>"},
		{name: "add without text", args: []string{"add"}, wantErr: "usage: todo add <text...>"},
		{name: "edit without text", args: []string{"edit", "0"}, wantErr: "usage: todo edit <index> <text...>"},
		{name: "get with args", args: []string{"get", "extra"}, wantErr: "usage: todo get"},
		{name: "unknown flag", args: []string{"get", "--nope"}, wantErr: "unknown flag"},
		{name: "bad theme", args: []string{"--theme", "disco", "get"}, wantErr: "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(append([]string{"-f", p}, tt.args...)...)
			assert.Equal(t, ExitUsage, r.code)
			assert.Contains(t, r.stderr, tt.wantErr)
		})
	}
	assert.Equal(t, "[ ] - A\n", readFile(t, p))
}

func TestRun_MalformedFile(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[x] - ok\nbroken line\n")

	r := run("-f", p, "get")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "malformed record")
	assert.Contains(t, r.stderr, ":2")
	assert.Empty(t, r.stdout)

	r = run("-f", p, "--skip-malformed", "get")
	assert.Equal(t, ExitOK, r.code)
	assert.Equal(t, "0 [x] - ok\n", r.stdout)
	assert.Contains(t, r.stderr, "skipping malformed record")

	t.Setenv("TODO_ON_MALFORMED", "skip")
	r = run("-f", p, "get")
	assert.Equal(t, ExitOK, r.code)
}

func TestRun_StoredTextWithCarriageReturn(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - a\rb\n[x] - ok\n")

	r := run("-f", p, "get")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "malformed record")
	assert.Contains(t, r.stderr, "--skip-malformed")

	r = run("-f", p, "--skip-malformed", "get")
	assert.Equal(t, ExitOK, r.code, r.stderr)
	assert.Equal(t, "0 [x] - ok\n", r.stdout)
}

func TestRun_DashLeadingText(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - A\n")

	require.Equal(t, ExitOK, run("-f", p, "add", "--", "-x buy").code)
	require.Equal(t, ExitOK, run("-f", p, "edit", "--", "0", "-1 degree").code)

	assert.Equal(t, "[ ] - -1 degree\n[ ] - -x buy\n", readFile(t, p))
	assert.Contains(t, run("help").stdout, `todo add -- "-x buy"`)
}

func TestRun_ConfigFile(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[ ] - from config\n")
	cfg := filepath.Join(t.TempDir(), "todo.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("file: "+p+"\ntheme: mono\n"), 0o644))

	r := run("--config", cfg, "check", "0")

	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "ok: checked")
	assert.Equal(t, "[x] - from config\n", readFile(t, p))
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	isolate(t)
	r := run("--config", filepath.Join(t.TempDir(), "nope.yaml"), "get")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "read config")
}

func TestRun_JSONFile(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "todos.json")

	require.Equal(t, ExitOK, run("-f", p, "add", "Buy milk").code)
	require.Equal(t, ExitOK, run("-f", p, "check", "0").code)

	assert.JSONEq(t, `[{"text":"Buy milk","checked":true}]`, readFile(t, p))
	assert.Equal(t, "0 [x] - Buy milk\n", run("-f", p, "get").stdout)
}

func TestRun_AddRejectsNewline(t *testing.T) {
	isolate(t)
	p := todoFile(t, "")

	r := run("-f", p, "add", "two\nlines")

	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, "invalid item text")
}

func TestRun_ListPanel(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[x] - Buy milk\n[ ] - Write report\n")

	r := run("-f", p, "--theme", "mono", "ls")

	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Todos")
	assert.Contains(t, r.stdout, "Total 2")
	assert.Contains(t, r.stdout, " 0. [x] Buy milk")
	assert.Contains(t, r.stdout, " 1. [ ] Write report")
	assert.Contains(t, r.stdout, "50%")
}

func TestRun_ListPanelGrouped(t *testing.T) {
	isolate(t)
	p := todoFile(t, "[x] - Buy milk\n[ ] - Write report\n")

	r := run("-f", p, "--theme", "mono", "ls", "--group")

	require.Equal(t, ExitOK, r.code, r.stderr)
	pending := bytes.Index([]byte(r.stdout), []byte("Pending"))
	done := bytes.Index([]byte(r.stdout), []byte("Done"))
	require.True(t, pending >= 0 && done > pending)
	// Grouped rows keep their list index.
	assert.Contains(t, r.stdout, " 1. [ ] Write report")
	assert.Contains(t, r.stdout, " 0. [x] Buy milk")
}

func TestRun_ListEmpty(t *testing.T) {
	isolate(t)
	p := todoFile(t, "")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	r := run("-f", p, "--theme", "mono", "ls")

	require.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "no items")
}

func TestTruncate(t *testing.T) {
	long := string(bytes.Repeat([]byte("ä"), 100))
	got := truncate(long)
	assert.Equal(t, maxTitle, len([]rune(got)))
	assert.Equal(t, "short", truncate("short"))
}
