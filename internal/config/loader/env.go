package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every environment variable termkeys reads.
const EnvPrefix = "TERMKEYS_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "TERMKEYS_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "TERMKEYS_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the short aliases for common settings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"TERMKEYS_LOG_LEVEL":  "logging.level",
		"TERMKEYS_CURSOR_APP": "terminal.cursor_keys_application",
		"TERMKEYS_KEYPAD_APP": "terminal.keypad_application",
		"TERMKEYS_SCRIPT":     "plugin.script",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if path, mapped := l.mapping[name]; mapped {
			setByPath(config, path, l.parseValue(value))
			continue
		}
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}

		setByPath(config, l.envToPath(name), l.parseValue(value))
	}

	return config, nil
}

// SetEnviron replaces the variable source, which defaults to os.Environ.
func (l *EnvLoader) SetEnviron(environ func() []string) {
	l.environ = environ
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToPath converts TERMKEYS_GESTURE_DEBOUNCE_MS to gesture.debounce_ms.
// The first word names the section; the rest is the setting.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + setting
}

// parseValue converts the string value into a bool, integer or string.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
