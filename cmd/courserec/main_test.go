package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/courserec"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// workspace switches to an empty directory holding the fixture artifact
// and returns the artifact path.
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "model.crb.gz")
	require.NoError(t, artifact.WriteFile(path, artifact.FixtureBundle()))
	return dir, path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"courserec"}, args...))
	return stdout.String(), stderr.String(), err
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && flag.Names()[0] == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	var zero T
	return zero
}

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func TestCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("convert output defaults to the artifact path", func(t *testing.T) {
		flag := findFlag[*cli.StringFlag](t, findCommand(t, app, "convert"), "output")
		assert.Equal(t, artifact.DefaultPath, flag.Value)
	})

	t.Run("import requires a store", func(t *testing.T) {
		flag := findFlag[*cli.StringFlag](t, findCommand(t, app, "import"), "store")
		assert.True(t, flag.Required)
	})

	t.Run("batch requires input and writes to stdout", func(t *testing.T) {
		cmd := findCommand(t, app, "batch")
		assert.True(t, findFlag[*cli.StringFlag](t, cmd, "input").Required)
		assert.Equal(t, "-", findFlag[*cli.StringFlag](t, cmd, "output").Value)
	})

	t.Run("source flags have no defaults", func(t *testing.T) {
		for _, name := range []string{"recommend", "batch", "serve", "export", "inspect"} {
			cmd := findCommand(t, app, name)
			assert.Empty(t, findFlag[*cli.StringFlag](t, cmd, "artifact").Value, name)
			assert.Empty(t, findFlag[*cli.StringFlag](t, cmd, "store").Value, name)
		}
	})

	t.Run("convert requires input", func(t *testing.T) {
		workspace(t)
		_, _, err := run(t, "convert")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})
}

func TestSetup_InvalidLogLevel(t *testing.T) {
	workspace(t)
	_, _, err := run(t, "--log-level", "loud", "recommend", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSetup_MissingConfigFile(t *testing.T) {
	dir, _ := workspace(t)
	_, _, err := run(t, "--config", filepath.Join(dir, "missing.yaml"), "recommend", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRecommendCommand(t *testing.T) {
	_, path := workspace(t)

	tests := []struct {
		name      string
		args      []string
		wantLines []string
	}{
		{
			name: "containment",
			args: []string{"recommend", "--artifact", path, "python"},
			wantLines: []string{
				"🎯 Recommended Courses:",
				"✅ Learn Python Programming from Scratch",
				"✅ Python for Data Science",
				"✅ Advanced Python Automation",
			},
		},
		{
			name: "multi-word query with limit",
			args: []string{"recommend", "--artifact", path, "--limit", "2", "Machine", "Learning", "A-Z"},
			wantLines: []string{
				"🎯 Recommended Courses:",
				"✅ Deep Learning with TensorFlow",
				"✅ Python for Data Science",
			},
		},
		{
			name: "not found",
			args: []string{"recommend", "--artifact", path, "xyzzy-nonexistent-course"},
			wantLines: []string{
				"🎯 Recommended Courses:",
				"✅ No exact match found. Try a similar keyword!",
			},
		},
		{
			name:      "blank query",
			args:      []string{"recommend", "--artifact", path, "   "},
			wantLines: []string{blankQueryWarning},
		},
		{
			name:      "no query",
			args:      []string{"recommend"},
			wantLines: []string{blankQueryWarning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, strings.Split(strings.TrimSpace(stdout), "\n"))
		})
	}
}

func TestRecommendCommand_Errors(t *testing.T) {
	dir, path := workspace(t)

	t.Run("missing artifact", func(t *testing.T) {
		_, _, err := run(t, "recommend", "--artifact", filepath.Join(dir, "missing.crb.gz"), "python")
		require.Error(t, err)
		assert.ErrorIs(t, err, artifact.ErrLoad)
	})

	t.Run("artifact and store together", func(t *testing.T) {
		_, _, err := run(t, "recommend", "--artifact", path, "--store", filepath.Join(dir, "store"), "python")
		require.Error(t, err)
		assert.ErrorIs(t, err, courserec.ErrConflictingSources)
	})
}

func TestRecommendCommand_Config(t *testing.T) {
	dir, path := workspace(t)
	content := "artifact:\n  path: " + path + "\nrecommend:\n  limit: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courserec.yaml"), []byte(content), 0o644))

	stdout, _, err := run(t, "recommend", "excel")
	require.NoError(t, err)
	assert.Equal(t, "🎯 Recommended Courses:\n✅ Financial Modeling in Excel\n", stdout)

	// the flag wins over the config
	stdout, _, err = run(t, "recommend", "--limit", "2", "excel")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✅ Excel for Beginners")
}

func TestConvertAndExportCommands(t *testing.T) {
	dir, path := workspace(t)

	exportPath := filepath.Join(dir, "export.json")
	stdout, _, err := run(t, "export", "--artifact", path, "--output", exportPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 9 courses")

	converted := filepath.Join(dir, "converted.crb.gz")
	stdout, _, err = run(t, "convert", "--input", exportPath, "--output", converted)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Courses: 9 (1 without a clean title)")
	assert.Contains(t, stdout, "Similarity: 9x9")

	want, err := artifact.Fingerprint(artifact.FixtureBundle())
	require.NoError(t, err)
	b, err := artifact.ReadFile(converted)
	require.NoError(t, err)
	got, err := artifact.Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	t.Run("yaml", func(t *testing.T) {
		yamlPath := filepath.Join(dir, "export.yaml")
		_, _, err := run(t, "export", "--artifact", path, "--output", yamlPath)
		require.NoError(t, err)
		_, _, err = run(t, "convert", "--input", yamlPath, "--output", filepath.Join(dir, "from-yaml.crb.gz"))
		require.NoError(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "convert", "--input", filepath.Join(dir, "export.csv"))
		assert.ErrorIs(t, err, artifact.ErrUnknownFormat)
	})
}

func TestImportCommand(t *testing.T) {
	dir, path := workspace(t)
	store := filepath.Join(dir, "store")

	stdout, _, err := run(t, "import", "--artifact", path, "--store", store)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Courses: 9")
	assert.Contains(t, stdout, "Fingerprint: ")

	stdout, _, err = run(t, "inspect", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Location: badger:"+store)
	assert.Contains(t, stdout, "Courses: 9")

	stdout, _, err = run(t, "recommend", "--store", store, "Machine Learning A-Z")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✅ Deep Learning with TensorFlow")
}

func TestInspectCommand(t *testing.T) {
	_, path := workspace(t)

	stdout, _, err := run(t, "inspect", "--artifact", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Location: "+path)
	assert.Contains(t, stdout, "Courses: 9 (1 without a clean title)")
	assert.Contains(t, stdout, "Fingerprint: ")
}

func TestBatchCommand(t *testing.T) {
	dir, path := workspace(t)
	input := filepath.Join(dir, "queries.txt")
	output := filepath.Join(dir, "results.jsonl")
	require.NoError(t, os.WriteFile(input, []byte("python\n\nMachine Learning A-Z\nxyzzy\n"), 0o644))

	_, stderr, err := run(t, "batch", "--artifact", path, "--input", input, "--output", output,
		"--pool-size", "2", "--report-interval", "1", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Queries: 3")
	assert.Contains(t, stderr, "3/3")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	var records []batch.Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec batch.Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, records, 3)

	assert.Equal(t, "python", records[0].Query)
	assert.Equal(t, "containment", records[0].Kind)
	assert.Len(t, records[0].Titles, 2)
	assert.Equal(t, "similar", records[1].Kind)
	assert.Equal(t, "not_found", records[2].Kind)
}

func TestBatchCommand_Stdin(t *testing.T) {
	_, path := workspace(t)

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader("excel\n")
	app.Writer = &stdout
	app.ErrWriter = &stderr

	require.NoError(t, app.Run([]string{"courserec", "batch", "--artifact", path, "--input", "-"}))
	assert.Contains(t, stdout.String(), `"kind":"containment"`)
	assert.Contains(t, stdout.String(), "Financial Modeling in Excel")
}
