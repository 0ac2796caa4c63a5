package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/officer-wizard/internal/app"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	EnvFile string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRanksURL    = "OFFICER_WIZARD_RANKS_URL"
	envUnitsURL    = "OFFICER_WIZARD_UNITS_URL"
	envDepartments = "OFFICER_WIZARD_DEPARTMENTS"
	envDepartment  = "OFFICER_WIZARD_DEPARTMENT"
	envSearchURL   = "OFFICER_WIZARD_SEARCH_URL"
	envPatchImage  = "OFFICER_WIZARD_PATCH_IMAGE"
	envTimeout     = "OFFICER_WIZARD_TIMEOUT"
	envWidth       = "OFFICER_WIZARD_WIDTH"
	envHeight      = "OFFICER_WIZARD_HEIGHT"
	envShowFooter  = "OFFICER_WIZARD_FOOTER"
	envTrace       = "OFFICER_WIZARD_TRACE"
	envLogFile     = "OFFICER_WIZARD_LOG_FILE"
	envEnvFile     = "OFFICER_WIZARD_ENV_FILE"

	defaultEnvFile = ".env"
	defaultTimeout = 10 * time.Second
)

// Load parses configuration from CLI arguments, the environment and an
// optional dotenv file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values from the
// dotenv file only apply when the environment does not already set them.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	envFile := envOrDefault(env, envEnvFile, defaultEnvFile)
	if v, ok := lookupArg(args, "env-file"); ok {
		envFile = v
	}
	if err := mergeDotenv(env, envFile); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("officer-wizard", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("env-file", envFile, "dotenv file with OFFICER_WIZARD_* defaults")
	ranksURL := fs.String("ranks-url", envOrDefault(env, envRanksURL, ""), "endpoint returning [[id, rank], ...] for a department_id")
	unitsURL := fs.String("units-url", envOrDefault(env, envUnitsURL, ""), "endpoint returning [[id, unit], ...] for a department_id")
	departments := fs.String("departments", envOrDefault(env, envDepartments, ""), "YAML or JSON file listing departments")
	dept := fs.String("department", envOrDefault(env, envDepartment, ""), "initially selected department id (defaults to the first listed)")
	searchURL := fs.String("search-url", envOrDefault(env, envSearchURL, ""), "base URL the final selection is encoded onto")
	patchImage := fs.String("patch-image", envOrDefault(env, envPatchImage, ""), "rank shoulder patch reference shown on request")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "per-request timeout for option lookups")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *timeout < 0 {
		return Config{}, fmt.Errorf("timeout must be >= 0 (got %s)", *timeout)
	}

	cfg := Config{
		App: app.Config{
			RanksURL:        strings.TrimSpace(*ranksURL),
			UnitsURL:        strings.TrimSpace(*unitsURL),
			DepartmentsPath: strings.TrimSpace(*departments),
			Department:      strings.TrimSpace(*dept),
			SearchURL:       strings.TrimSpace(*searchURL),
			PatchImage:      strings.TrimSpace(*patchImage),
			Timeout:         *timeout,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		EnvFile: envFile,
		Flags: map[string]string{
			"ranksURL":    *ranksURL,
			"unitsURL":    *unitsURL,
			"departments": *departments,
			"department":  *dept,
			"searchURL":   *searchURL,
			"patchImage":  *patchImage,
			"timeout":     timeout.String(),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
			"envFile":     envFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// mergeDotenv fills env with values from path that are not already set. A
// missing file is not an error.
func mergeDotenv(env map[string]string, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, v := range values {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	return nil
}

// lookupArg finds -name/--name values ahead of full flag parsing.
func lookupArg(args []string, name string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			return "", false
		}
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			continue
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1], true
		}
		if strings.HasPrefix(trimmed, name+"=") {
			return strings.TrimPrefix(trimmed, name+"="), true
		}
	}
	return "", false
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the endpoints and department list are configured.
func Validate(cfg Config) error {
	if err := validateEndpoint("ranks-url", cfg.App.RanksURL); err != nil {
		return err
	}
	if err := validateEndpoint("units-url", cfg.App.UnitsURL); err != nil {
		return err
	}
	if cfg.App.SearchURL != "" {
		if err := validateEndpoint("search-url", cfg.App.SearchURL); err != nil {
			return err
		}
	}
	if cfg.App.DepartmentsPath == "" {
		return errors.New("departments file is required (--departments)")
	}
	return nil
}

func validateEndpoint(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL (got %q)", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host (got %q)", name, raw)
	}
	return nil
}
