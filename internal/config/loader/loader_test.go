package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path string
		want string
	}{
		{"/a/termkeys.toml", "*loader.TOMLLoader"},
		{"/a/termkeys.TOML", "*loader.TOMLLoader"},
		{"/a/termkeys.yaml", "*loader.YAMLLoader"},
		{"/a/termkeys.yml", "*loader.YAMLLoader"},
	}

	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		if err != nil {
			t.Errorf("ForPath(%q) error: %v", tt.path, err)
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
			}
		}
	}

	if _, err := ForPath(memfs, "/a/termkeys.json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ForPath(json) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/termkeys.toml", `
[terminal]
cursor_keys_application = true

[gesture]
debounce_ms = 150
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/termkeys.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	terminal, ok := config["terminal"].(map[string]any)
	if !ok {
		t.Fatal("expected terminal to be a map")
	}
	if terminal["cursor_keys_application"] != true {
		t.Errorf("cursor_keys_application = %v, want true", terminal["cursor_keys_application"])
	}

	gesture, ok := config["gesture"].(map[string]any)
	if !ok {
		t.Fatal("expected gesture to be a map")
	}
	if gesture["debounce_ms"] != int64(150) {
		t.Errorf("debounce_ms = %v (%T), want 150", gesture["debounce_ms"], gesture["debounce_ms"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nonexistent.toml").Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", "[terminal\ncursor_keys_application = true\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/invalid.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", parseErr.Path)
	}
	if parseErr.Line < 1 {
		t.Errorf("Line = %d, want a position", parseErr.Line)
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`script = "remap.lua"`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["script"] != "remap.lua" {
		t.Errorf("script = %v, want 'remap.lua'", config["script"])
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/termkeys.yaml", `
logging:
  level: debug
gesture:
  enabled: false
  debounce_ms: 80
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/termkeys.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	flat := Flatten(config)
	if flat["logging.level"] != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", flat["logging.level"])
	}
	if flat["gesture.enabled"] != false {
		t.Errorf("gesture.enabled = %v, want false", flat["gesture.enabled"])
	}
	if flat["gesture.debounce_ms"] != 80 {
		t.Errorf("gesture.debounce_ms = %v (%T), want 80", flat["gesture.debounce_ms"], flat["gesture.debounce_ms"])
	}
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/missing.yml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "logging: [unclosed\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Path != "/bad.yaml" {
		t.Errorf("Path = %q, want '/bad.yaml'", parseErr.Path)
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
		{ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"terminal": map[string]any{"cursor_keys_application": false, "keypad_application": true},
		"logging":  map[string]any{"level": "info"},
	}
	src := map[string]any{
		"terminal": map[string]any{"cursor_keys_application": true},
		"plugin":   map[string]any{"script": "x.lua"},
	}

	flat := Flatten(DeepMerge(dst, src))

	want := map[string]any{
		"terminal.cursor_keys_application": true,
		"terminal.keypad_application":      true,
		"logging.level":                    "info",
		"plugin.script":                    "x.lua",
	}
	if len(flat) != len(want) {
		t.Fatalf("merged %d settings, want %d: %v", len(flat), len(want), flat)
	}
	for k, v := range want {
		if flat[k] != v {
			t.Errorf("%s = %v, want %v", k, flat[k], v)
		}
	}
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TERMKEYS_LOG_LEVEL", "debug")
	t.Setenv("TERMKEYS_CURSOR_APP", "yes")
	t.Setenv("TERMKEYS_GESTURE_DEBOUNCE_MS", "250")

	config, err := NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	flat := Flatten(config)
	if flat["logging.level"] != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", flat["logging.level"])
	}
	if flat["terminal.cursor_keys_application"] != true {
		t.Errorf("terminal.cursor_keys_application = %v, want true", flat["terminal.cursor_keys_application"])
	}
	if flat["gesture.debounce_ms"] != int64(250) {
		t.Errorf("gesture.debounce_ms = %v (%T), want 250", flat["gesture.debounce_ms"], flat["gesture.debounce_ms"])
	}
	if _, ok := flat["log.level"]; ok {
		t.Error("mapped variable was also loaded by prefix scan")
	}
}

func TestEnvLoader_SetEnviron(t *testing.T) {
	t.Setenv("TERMKEYS_LOG_LEVEL", "error")

	loader := NewEnvLoader(EnvPrefix)
	loader.SetEnviron(func() []string {
		return []string{
			"TERMKEYS_SCRIPT=remap.lua",
			"TERMKEYS_GESTURE_ENABLED=off",
			"HOME=/root",
		}
	})

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	flat := Flatten(config)
	if flat["plugin.script"] != "remap.lua" {
		t.Errorf("plugin.script = %v, want 'remap.lua'", flat["plugin.script"])
	}
	if flat["gesture.enabled"] != false {
		t.Errorf("gesture.enabled = %v, want false", flat["gesture.enabled"])
	}
	if _, ok := flat["logging.level"]; ok {
		t.Error("alias read from the process environment instead of SetEnviron")
	}
	if len(flat) != 2 {
		t.Errorf("loaded %v, want two settings", flat)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(EnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"TERMKEYS_GESTURE_DEBOUNCE_MS", "gesture.debounce_ms"},
		{"TERMKEYS_TERMINAL_KEYPAD_APPLICATION", "terminal.keypad_application"},
		{"TERMKEYS_PLUGIN_SCRIPT", "plugin.script"},
		{"TERMKEYS_SIMPLE", "simple"},
	}

	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	loader := NewEnvLoader(EnvPrefix)

	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"No", false},
		{"off", false},
		{"42", int64(42)},
		{"-10", int64(-10)},
		{"1", int64(1)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := loader.parseValue(tt.input); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping("MY_", map[string]string{})
	loader.AddMapping("CUSTOM_VAR", "custom.path")
	t.Setenv("CUSTOM_VAR", "custom_value")

	config, _ := loader.Load()
	if got := Flatten(config)["custom.path"]; got != "custom_value" {
		t.Errorf("custom.path = %v, want 'custom_value'", got)
	}

	loader.RemoveMapping("CUSTOM_VAR")
	config, _ = loader.Load()
	if _, ok := Flatten(config)["custom.path"]; ok {
		t.Error("custom.path still loaded after RemoveMapping")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TERMKEYS_TEST_EXISTS", "exists")

	if val := GetEnvOrDefault("TERMKEYS_TEST_EXISTS", "default"); val != "exists" {
		t.Errorf("GetEnvOrDefault = %q, want 'exists'", val)
	}
	if val := GetEnvOrDefault("TERMKEYS_TEST_NOT_EXISTS", "default"); val != "default" {
		t.Errorf("GetEnvOrDefault = %q, want 'default'", val)
	}
}
