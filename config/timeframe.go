package config

import (
	"fmt"
	"strings"
)

// Timeframe is the granularity of the climate records requested from the server
type Timeframe int

const (
	TimeframeHourly Timeframe = iota + 1
	TimeframeDaily
	TimeframeMonthly
)

// ParseTimeframe maps the command line keyword to a Timeframe
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.TrimSpace(s) {
	case "hour":
		return TimeframeHourly, nil
	case "day":
		return TimeframeDaily, nil
	case "month":
		return TimeframeMonthly, nil
	default:
		return 0, fmt.Errorf("invalid timeframe %q: must be one of hour, day, month", s)
	}
}

// Code returns the numeric code the bulk data endpoint expects
func (t Timeframe) Code() string {
	switch t {
	case TimeframeHourly:
		return "1"
	case TimeframeDaily:
		return "2"
	case TimeframeMonthly:
		return "3"
	default:
		return ""
	}
}

// String returns the command line keyword for the timeframe
func (t Timeframe) String() string {
	switch t {
	case TimeframeHourly:
		return "hour"
	case TimeframeDaily:
		return "day"
	case TimeframeMonthly:
		return "month"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known timeframes
func (t Timeframe) Valid() bool {
	return t >= TimeframeHourly && t <= TimeframeMonthly
}
