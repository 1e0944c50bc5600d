package downloader

import (
	"fmt"
	"net/url"
	"path/filepath"

	"climate-bulk-download/config"
)

const urlTemplate = "%s?format=csv&stationID=%s&Year=%d&Month=%d&Day=1&time=UTC&timeframe=%s&submit=%%20Download+Data"

// BuildURL returns the bulk data request URL for one month of station data.
// Year and month are unpadded decimals.
func BuildURL(baseURL, stationID string, year, month int, timeframeCode string) string {
	return fmt.Sprintf(urlTemplate, baseURL, url.QueryEscape(stationID), year, month, timeframeCode)
}

// DestinationPath returns {directory}/{station}_{code}_{year}-{month}.csv
func DestinationPath(directory, stationID, timeframeCode string, year, month int) string {
	return filepath.Join(directory, fmt.Sprintf("%s_%s_%d-%d.csv", stationID, timeframeCode, year, month))
}

// NewFetchTarget derives the request and destination for one (year, month) pair
func NewFetchTarget(cfg *config.RunConfig, year, month int) FetchTarget {
	code := cfg.Timeframe.Code()
	return FetchTarget{
		Year:  year,
		Month: month,
		URL:   BuildURL(cfg.BaseURL, cfg.StationID, year, month, code),
		Path:  DestinationPath(cfg.Directory, cfg.StationID, code, year, month),
	}
}

// Targets enumerates every (year, month) pair of the run, year-major
func Targets(cfg *config.RunConfig) []FetchTarget {
	targets := make([]FetchTarget, 0, cfg.TotalTargets())
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		for month := 1; month <= 12; month++ {
			targets = append(targets, NewFetchTarget(cfg, year, month))
		}
	}
	return targets
}
