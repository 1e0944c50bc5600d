package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that provide defaults for options missing on the command line
const (
	EnvStation        = "CLIMATE_STATION"
	EnvTimeframe      = "CLIMATE_TIMEFRAME"
	EnvStartYear      = "CLIMATE_START_YEAR"
	EnvEndYear        = "CLIMATE_END_YEAR"
	EnvDirectory      = "CLIMATE_DIRECTORY"
	EnvBaseURL        = "CLIMATE_BASE_URL"
	EnvConnectTimeout = "HTTP_CONNECT_TIMEOUT"
	EnvReceiveTimeout = "HTTP_RECEIVE_TIMEOUT"
	EnvLogLevel       = "LOG_LEVEL"
)

// EnvValidator handles validation of environment-provided option values
type EnvValidator struct {
	lookup func(string) (string, bool)
}

// NewEnvValidator creates a new environment validator reading the process environment
func NewEnvValidator() *EnvValidator {
	return &EnvValidator{lookup: os.LookupEnv}
}

// Get returns the trimmed value of an environment variable and whether it is set and non-empty
func (e *EnvValidator) Get(key string) (string, bool) {
	value, ok := e.lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// ValidateNumeric checks that every numeric variable that is set parses as an integer
// Returns an error naming each malformed variable
func (e *EnvValidator) ValidateNumeric() error {
	numericVars := []string{EnvStartYear, EnvEndYear, EnvConnectTimeout, EnvReceiveTimeout}

	var invalid []string
	for _, varName := range numericVars {
		value, ok := e.Get(varName)
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(value); err != nil {
			invalid = append(invalid, fmt.Sprintf("%s=%q", varName, value))
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("environment variables must be integers: %v", invalid)
	}

	return nil
}
