package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed placeholders.yaml
var placeholdersYAML []byte

// DefaultLocale is used when RECONCILE_LOCALE is unset or unknown.
const DefaultLocale = "en"

type Config struct {
	Console   ConsoleConfig
	Reconcile ReconcileConfig
	Web       WebConfig
	LogLevel  string
	Locales   LocalesConfig
}

type ConsoleConfig struct {
	URL        string        // console backend base URL, without the /api suffix
	Timeout    time.Duration // per-request timeout (default 10s)
	CaptureDir string        // directory for raw API responses (optional)
}

type ReconcileConfig struct {
	Policy    string // fill, zero or legacy
	Locale    string // placeholder locale (default en)
	UseRoster bool   // derive unseen users from the user list when the backend omits them
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // CORS whitelist, localhost is always allowed
}

type LocalesConfig struct {
	Locales map[string]PlaceholderText `yaml:"locales"`
}

type PlaceholderText struct {
	NameFormat  string `yaml:"name_format"`
	Description string `yaml:"description"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// envList splits a comma-separated environment variable, dropping empty items.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() *Config {
	var locales LocalesConfig
	if err := yaml.Unmarshal(placeholdersYAML, &locales); err != nil {
		// Embedded file, so this only fails on a broken build.
		panic("failed to unmarshal embedded placeholders.yaml: " + err.Error())
	}

	return &Config{
		Console: ConsoleConfig{
			URL:        strings.TrimRight(envString("CONSOLE_URL", "http://127.0.0.1:5000"), "/"),
			Timeout:    envDuration("CONSOLE_TIMEOUT", 10*time.Second),
			CaptureDir: os.Getenv("CONSOLE_CAPTURE_DIR"),
		},
		Reconcile: ReconcileConfig{
			Policy:    strings.ToLower(os.Getenv("RECONCILE_POLICY")),
			Locale:    strings.ToLower(envString("RECONCILE_LOCALE", DefaultLocale)),
			UseRoster: envBool("RECONCILE_USE_ROSTER"),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),

			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		LogLevel: envString("LOG_LEVEL", "info"),
		Locales:  locales,
	}
}

// Placeholders returns the placeholder texts for the configured locale,
// falling back to DefaultLocale.
func (c *Config) Placeholders() PlaceholderText {
	if p, ok := c.Locales.Locales[c.Reconcile.Locale]; ok {
		return p
	}
	return c.Locales.Locales[DefaultLocale]
}
