package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-fluent/internal/testutil"
)

const peopleJSON = `[
  {"name": "Carol", "age": 45, "color": "red"},
  {"name": "Alice", "age": 30, "color": "red"},
  {"name": "Bob", "age": 17, "color": "blue"}
]`

const peopleYAML = `
- name: Carol
  age: 45
- name: Alice
  age: 30
- name: Bob
  age: 17
`

// run executes the root command in a fresh working directory.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEval(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "people.json", peopleJSON)
	testutil.WriteFile(t, dir, "people.yaml", peopleYAML)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "json file",
			args: []string{"eval", "people.json", "-s", `where("age", ">=", 18)`, "-s", "sortBy(name)", "-s", "pluck(name)"},
			want: "[\n  \"Alice\",\n  \"Carol\"\n]\n",
		},
		{
			name: "yaml file to yaml",
			args: []string{"eval", "people.yaml", "-s", `where(age, "<", 40)`, "-s", "pluck(name)", "-o", "yaml"},
			want: "- Alice\n- Bob\n",
		},
		{
			name:  "stdin",
			stdin: peopleJSON,
			args:  []string{"eval", "-", "-s", "countBy(color)"},
			want:  "{\n  \"blue\": 1,\n  \"red\": 2\n}\n",
		},
		{
			name: "dot output",
			args: []string{"eval", "people.yaml", "-s", "take(1)", "-o", "dot"},
			want: "1.age = 45\n1.name = \"Carol\"\n",
		},
		{
			name: "deferred pipeline reorders steps",
			args: []string{"eval", "people.yaml", "--defer", "-s", "pluck(age)", "-s", `where(age, ">", 20)`},
			want: "[\n  45,\n  30\n]\n",
		},
		{
			name: "separator flag",
			args: []string{"eval", "-", "--separator", "/", "-s", `where("a/b", 1)`, "-s", "keys"},
			stdin: `{"x": {"a": {"b": 1}}, "y": {"a": {"b": 2}}}`,
			want:  "[\n  \"x\"\n]\n",
		},
		{
			name:    "unknown operation",
			args:    []string{"eval", "people.json", "-s", "explode"},
			wantErr: "explode",
		},
		{
			name:    "bad step syntax",
			args:    []string{"eval", "people.json", "-s", "where(age"},
			wantErr: "missing closing parenthesis",
		},
		{
			name:    "missing file",
			args:    []string{"eval", "nope.json"},
			wantErr: "reading input",
		},
		{
			name:    "scalar document",
			stdin:   "42\n",
			args:    []string{"eval", "-s", "keys"},
			wantErr: "container",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.stdin, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEval_ConfigFileAndDebug(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "people.json", peopleJSON)
	testutil.WriteFile(t, dir, "fluent.yaml", "output: yaml\ndebug: true\n")

	stdout, stderr, err := run(t, "", "eval", "people.json", "-s", "take(1)", "-s", "pluck(name)")
	require.NoError(t, err)
	assert.Equal(t, "- Carol\n", stdout)
	assert.Contains(t, stderr, "using config file")
	assert.Contains(t, stderr, "op=take")
}

func TestEval_Macros(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "people.json", peopleJSON)
	macros := filepath.Join(dir, "lib")
	testutil.WriteFile(t, macros, "people.star", `
_phases = {"adults": "filter"}

def adults(value, min_age = 18):
    return [p for p in value if get(p, "age", 0) >= min_age]
`)

	stdout, _, err := run(t, "", "eval", "people.json", "--macros-dir", macros,
		"-s", "people.adults(40)", "-s", "pluck(name)")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"Carol\"\n]\n", stdout)

	stdout, _, err = run(t, "", "ops", "--macros-dir", macros, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "people.adults"`)
	assert.Contains(t, stdout, `"source": "macro"`)
}

func TestEval_BadMacros(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "macros/broken.star", "def f(\n")

	_, _, err := run(t, "", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading macros")
}

func TestOps(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := run(t, "", "ops")
	require.NoError(t, err)
	for _, want := range []string{"where", "sortBy", "filter", "update", "builtin"} {
		assert.Contains(t, stdout, want)
	}
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fluent v"+Version+"\n", stdout)
}

func TestInvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "[]", "eval", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output")
}
