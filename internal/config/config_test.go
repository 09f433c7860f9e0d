package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolate points HOME and XDG_CONFIG_HOME at empty temp directories,
// clears PM_* variables and changes into a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"PM_ROOT", "PM_DIR", "PM_EDITOR", "VISUAL", "EDITOR", "PM_HOOK",
		"PM_LOG_LEVEL", "PM_LOG_FORMAT", "PM_LOG_TIMESTAMPS",
		"PM_SHOW_ARCHIVED", "PM_COLOR", "NO_COLOR",
	} {
		t.Setenv(key, "")
	}
	wd := t.TempDir()
	chdir(t, wd)
	return wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func load(t *testing.T, args ...string) *ConfigWithSources {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	return cws
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cws := load(t)
	cfg := cws.Config

	if cfg.Dir != DefaultDir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, DefaultDir)
	}
	if cfg.Editor != DefaultEditor {
		t.Errorf("Editor = %q, want %q", cfg.Editor, DefaultEditor)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, DefaultLogFormat)
	}
	if cfg.Board.Color != DefaultColor {
		t.Errorf("Board.Color = %q, want %q", cfg.Board.Color, DefaultColor)
	}
	for _, field := range configFields() {
		if got := cws.Sources[field]; got != SourceDefault {
			t.Errorf("Sources[%q] = %q, want %q", field, got, SourceDefault)
		}
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files = %v, want none", cfg.Files)
	}
}

func TestProjectRootDiscovery(t *testing.T) {
	wd := isolate(t)
	if err := os.Mkdir(filepath.Join(wd, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(wd, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, nested)

	cfg := load(t).Config
	root, err := cfg.RequireRoot()
	if err != nil {
		t.Fatalf("RequireRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(wd)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
}

func TestRequireRootWithoutGit(t *testing.T) {
	wd := isolate(t)
	if _, ok := FindProjectRoot(wd); ok {
		t.Skip("temp directory is inside a git checkout")
	}
	cfg := load(t).Config
	_, err := cfg.RequireRoot()
	if err == nil {
		t.Fatal("RequireRoot succeeded without a .git directory")
	}
	if !strings.Contains(err.Error(), "could not find project root") {
		t.Errorf("error = %v", err)
	}
}

func TestRootFlagIsAbsolute(t *testing.T) {
	wd := isolate(t)
	if err := os.Mkdir(filepath.Join(wd, "proj"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cws := load(t, "--root", "proj")
	if !filepath.IsAbs(cws.Config.ProjectRoot) {
		t.Errorf("ProjectRoot = %q, want absolute", cws.Config.ProjectRoot)
	}
	if filepath.Base(cws.Config.ProjectRoot) != "proj" {
		t.Errorf("ProjectRoot = %q, want .../proj", cws.Config.ProjectRoot)
	}
	if cws.Sources["root"] != SourceFlag {
		t.Errorf("Sources[root] = %q, want %q", cws.Sources["root"], SourceFlag)
	}
}

func TestLayering(t *testing.T) {
	wd := isolate(t)
	home := os.Getenv("HOME")
	writeFile(t, filepath.Join(home, ".pm", "pm.toml"), `
editor = "nano"
log_level = "info"
dir = "tracker"

[board]
show_archived = true
`)
	writeFile(t, filepath.Join(wd, "pm.toml"), `
log_level = "debug"
`)
	t.Setenv("PM_DIR", "work")
	t.Setenv("PM_HOOK", "./hook.sh")

	cws := load(t, "--log-format", "json")
	cfg := cws.Config

	tests := []struct {
		field  string
		got    string
		want   string
		source ConfigSource
	}{
		{"editor", cfg.Editor, "nano", SourceUserFile},
		{"log_level", cfg.LogLevel, "debug", SourceProjFile},
		{"dir", cfg.Dir, "work", SourceEnv},
		{"log_format", cfg.LogFormat, "json", SourceFlag},
		{"board.color", cfg.Board.Color, "auto", SourceDefault},
		{"hook", cfg.Hook, "./hook.sh", SourceEnv},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
		if cws.Sources[tt.field] != tt.source {
			t.Errorf("Sources[%s] = %q, want %q", tt.field, cws.Sources[tt.field], tt.source)
		}
	}
	if !cfg.Board.ShowArchived {
		t.Error("Board.ShowArchived = false, want true from user file")
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files = %v, want user and project file", cfg.Files)
	}
}

func TestXDGUserConfig(t *testing.T) {
	isolate(t)
	writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "pm", "pm.toml"), `editor = "ed"`)

	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on linux and the BSDs")
	}
	cws := load(t)
	if cws.Config.Editor != "ed" {
		t.Errorf("Editor = %q, want ed", cws.Config.Editor)
	}
	if cws.Sources["editor"] != SourceUserFile {
		t.Errorf("Sources[editor] = %q, want %q", cws.Sources["editor"], SourceUserFile)
	}
}

func TestEditorEnvPrecedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"default", nil, DefaultEditor},
		{"editor", map[string]string{"EDITOR": "nano"}, "nano"},
		{"visual over editor", map[string]string{"VISUAL": "code", "EDITOR": "nano"}, "code"},
		{"pm editor wins", map[string]string{"PM_EDITOR": "hx", "VISUAL": "code", "EDITOR": "nano"}, "hx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := load(t).Config.Editor; got != tt.want {
				t.Errorf("Editor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoColorEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")
	cws := load(t)
	if cws.Config.Board.Color != "never" {
		t.Errorf("Board.Color = %q, want never", cws.Config.Board.Color)
	}

	t.Setenv("PM_COLOR", "always")
	cws = load(t)
	if cws.Config.Board.Color != "always" {
		t.Errorf("Board.Color = %q, want always when PM_COLOR is set", cws.Config.Board.Color)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{" YES ", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"nope", false},
	}
	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    []string
		wantErr string
	}{
		{"bad log format", "", []string{"--log-format", "xml"}, "invalid log_format"},
		{"bad color", "", []string{"--color", "rainbow"}, "invalid board.color"},
		{"absolute dir", "", []string{"--dir", "/tmp/pm"}, "invalid dir"},
		{"empty dir", `dir = ""`, nil, "invalid dir"},
		{"unknown key", "colour = \"never\"\n", nil, "unknown keys: colour"},
		{"unknown nested key", "[board]\nwidth = 3\n", nil, "unknown keys: board.width"},
		{"malformed toml", "dir = \n", nil, "loading project config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(wd, ".pm.toml"), tt.file)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(new(strings.Builder))
			_, err := Load(fs, tt.args)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PM_TEST_DIR", "/srv/work")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/src", filepath.Join(home, "src")},
		{"$PM_TEST_DIR/x", "/srv/work/x"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigParses(t *testing.T) {
	wd := isolate(t)
	writeFile(t, filepath.Join(wd, "pm.toml"), ExampleConfig())
	cws := load(t)
	if cws.Sources["dir"] != SourceProjFile {
		t.Errorf("Sources[dir] = %q, want %q", cws.Sources["dir"], SourceProjFile)
	}
}
