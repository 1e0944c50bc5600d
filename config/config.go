package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the Climate Services Canada bulk data endpoint
const DefaultBaseURL = "https://climate.weather.gc.ca/climate_data/bulk_data_e.html"

const (
	defaultTimeoutMillis = "12000"
	defaultDirectory     = "."
	defaultLogLevel      = "INFO"
)

// MaxYear is the largest accepted year
const MaxYear = 65535

// ProgramName is used in usage output
const ProgramName = "canada-climate-data-bulk-download"

// RunConfig holds the validated configuration for one bulk download run
type RunConfig struct {
	StationID      string        // Opaque station identifier
	StartYear      int           // First year (inclusive)
	EndYear        int           // Last year (inclusive)
	Timeframe      Timeframe     // Record granularity
	Directory      string        // Destination directory for CSV files
	ConnectTimeout time.Duration // Applied to the whole request/response cycle
	ReceiveTimeout time.Duration // Accepted but not applied to requests
	BaseURL        string        // Bulk data endpoint
	LogLevel       string        // Logging level (DEBUG, INFO, WARN, ERROR, FATAL)
}

// ConfigError reports an invalid or missing option before any work begins
type ConfigError struct {
	Option  string
	Message string
}

// Error implements the error interface
func (ce *ConfigError) Error() string {
	if ce.Option == "" {
		return ce.Message
	}
	return fmt.Sprintf("--%s: %s", ce.Option, ce.Message)
}

// IsConfigError checks if an error is, or wraps, a ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// option describes one command line flag and the environment variable backing it
type option struct {
	name     string
	env      string
	def      string
	usage    string
	required bool
	value    *string
}

// Years returns the number of years covered by the run
func (c *RunConfig) Years() int {
	return c.EndYear - c.StartYear + 1
}

// TotalTargets returns the number of (year, month) pairs in the run
func (c *RunConfig) TotalTargets() int {
	return 12 * c.Years()
}

// LoadConfig parses command line arguments, falling back to environment
// variables (optionally loaded from envFiles, or ".env" when none are given)
// for options that were not passed. Returns a validated RunConfig.
func LoadConfig(args []string, usageOut io.Writer, envFiles ...string) (*RunConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	validator := NewEnvValidator()
	if err := validator.ValidateNumeric(); err != nil {
		return nil, &ConfigError{Message: err.Error()}
	}

	fs := flag.NewFlagSet(ProgramName, flag.ContinueOnError)
	if usageOut == nil {
		usageOut = io.Discard
	}
	fs.SetOutput(usageOut)

	options := []*option{
		{name: "start-year", env: EnvStartYear, required: true, usage: "First year (inclusive) to download data for"},
		{name: "end-year", env: EnvEndYear, required: true, usage: "Last year (inclusive) to download data for"},
		{name: "station", env: EnvStation, required: true, usage: "Station ID to bulk download for"},
		{name: "timeframe", env: EnvTimeframe, required: true, usage: "Timeframe: hour, day, month"},
		{name: "http-connect-timeout", env: EnvConnectTimeout, def: defaultTimeoutMillis, usage: "HTTP connection timeout in milliseconds. Note that datamart does not use compression and has large response sizes."},
		{name: "http-receive-timeout", env: EnvReceiveTimeout, def: defaultTimeoutMillis, usage: "HTTP receive timeout in milliseconds. Note that datamart does not use compression and has large response sizes."},
		{name: "directory", env: EnvDirectory, def: defaultDirectory, usage: "The directory the bulk downloaded files should be saved to."},
		{name: "base-url", env: EnvBaseURL, def: DefaultBaseURL, usage: "Bulk data endpoint"},
		{name: "log-level", env: EnvLogLevel, def: defaultLogLevel, usage: "Logging level: DEBUG, INFO, WARN, ERROR, FATAL"},
	}
	for _, opt := range options {
		opt.value = fs.String(opt.name, opt.def, opt.usage)
	}
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Bulk downloads CSV data from Climate Services Canada. Will iterate over all months.\n\nUsage of %s:\n", ProgramName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &ConfigError{Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("unexpected arguments: %v", fs.Args())}
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	values := make(map[string]string, len(options))
	var missing []string
	for _, opt := range options {
		value := strings.TrimSpace(*opt.value)
		if !explicit[opt.name] {
			if envValue, ok := validator.Get(opt.env); ok {
				value = envValue
			}
		}
		if opt.required && value == "" {
			missing = append(missing, "--"+opt.name)
		}
		values[opt.name] = value
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("missing required options: %v", missing)}
	}

	cfg, err := buildConfig(values)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFiles loads dotenv files; a missing file is not an error
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return &ConfigError{Message: fmt.Sprintf("failed to load environment file: %v", err)}
	}
	return nil
}

func buildConfig(values map[string]string) (*RunConfig, error) {
	timeframe, err := ParseTimeframe(values["timeframe"])
	if err != nil {
		return nil, &ConfigError{Option: "timeframe", Message: err.Error()}
	}

	startYear, err := parseYear("start-year", values["start-year"])
	if err != nil {
		return nil, err
	}

	endYear, err := parseYear("end-year", values["end-year"])
	if err != nil {
		return nil, err
	}

	connectTimeout, err := parseMillis("http-connect-timeout", values["http-connect-timeout"])
	if err != nil {
		return nil, err
	}

	receiveTimeout, err := parseMillis("http-receive-timeout", values["http-receive-timeout"])
	if err != nil {
		return nil, err
	}

	return &RunConfig{
		StationID:      values["station"],
		StartYear:      startYear,
		EndYear:        endYear,
		Timeframe:      timeframe,
		Directory:      values["directory"],
		ConnectTimeout: connectTimeout,
		ReceiveTimeout: receiveTimeout,
		BaseURL:        values["base-url"],
		LogLevel:       strings.ToUpper(values["log-level"]),
	}, nil
}

func parseYear(name, value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigError{Option: name, Message: fmt.Sprintf("must be an integer, got: %q", value)}
	}
	if year < 0 {
		return 0, &ConfigError{Option: name, Message: fmt.Sprintf("must not be negative, got: %d", year)}
	}
	if year > MaxYear {
		return 0, &ConfigError{Option: name, Message: fmt.Sprintf("must not exceed %d, got: %d", MaxYear, year)}
	}
	return year, nil
}

func parseMillis(name, value string) (time.Duration, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ConfigError{Option: name, Message: fmt.Sprintf("invalid timeout specified: %q", value)}
	}
	if ms <= 0 {
		return 0, &ConfigError{Option: name, Message: fmt.Sprintf("timeout must be a positive number of milliseconds, got: %d", ms)}
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Validate performs range checks on the configuration
func (c *RunConfig) Validate() error {
	if strings.TrimSpace(c.StationID) == "" {
		return &ConfigError{Option: "station", Message: "station ID cannot be empty"}
	}

	if !c.Timeframe.Valid() {
		return &ConfigError{Option: "timeframe", Message: fmt.Sprintf("unknown timeframe: %d", c.Timeframe)}
	}

	if c.StartYear < 0 || c.EndYear < 0 {
		return &ConfigError{Option: "start-year", Message: "years must not be negative"}
	}

	if c.StartYear > MaxYear || c.EndYear > MaxYear {
		return &ConfigError{Option: "end-year", Message: fmt.Sprintf("years must not exceed %d", MaxYear)}
	}

	if c.StartYear > c.EndYear {
		return &ConfigError{Option: "start-year", Message: fmt.Sprintf("start year %d is after end year %d", c.StartYear, c.EndYear)}
	}

	if c.ConnectTimeout <= 0 {
		return &ConfigError{Option: "http-connect-timeout", Message: "timeout must be positive"}
	}

	if c.ReceiveTimeout <= 0 {
		return &ConfigError{Option: "http-receive-timeout", Message: "timeout must be positive"}
	}

	if c.BaseURL == "" {
		return &ConfigError{Option: "base-url", Message: "base URL cannot be empty"}
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ConfigError{Option: "base-url", Message: fmt.Sprintf("invalid URL %q: %v", c.BaseURL, err)}
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return &ConfigError{Option: "base-url", Message: fmt.Sprintf("invalid URL %q: must be an absolute http or https URL", c.BaseURL)}
	}
	if base.RawQuery != "" || base.Fragment != "" {
		return &ConfigError{Option: "base-url", Message: fmt.Sprintf("invalid URL %q: must not carry a query or fragment", c.BaseURL)}
	}

	info, err := os.Stat(c.Directory)
	if err != nil {
		return &ConfigError{Option: "directory", Message: fmt.Sprintf("cannot access %q: %v", c.Directory, err)}
	}
	if !info.IsDir() {
		return &ConfigError{Option: "directory", Message: fmt.Sprintf("%q is not a directory", c.Directory)}
	}

	validLogLevels := map[string]bool{
		"DEBUG": true,
		"INFO":  true,
		"WARN":  true,
		"ERROR": true,
		"FATAL": true,
	}

	if !validLogLevels[c.LogLevel] {
		return &ConfigError{Option: "log-level", Message: fmt.Sprintf("invalid log level: %s. Valid levels are: DEBUG, INFO, WARN, ERROR, FATAL", c.LogLevel)}
	}

	return nil
}
