package downloader

import (
	"path/filepath"
	"testing"
	"time"

	"climate-bulk-download/config"
)

func testConfig(t *testing.T, startYear, endYear int) *config.RunConfig {
	t.Helper()
	return &config.RunConfig{
		StationID:      "1234",
		StartYear:      startYear,
		EndYear:        endYear,
		Timeframe:      config.TimeframeMonthly,
		Directory:      t.TempDir(),
		ConnectTimeout: 2 * time.Second,
		ReceiveTimeout: 2 * time.Second,
		BaseURL:        config.DefaultBaseURL,
		LogLevel:       "DEBUG",
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		station  string
		year     int
		month    int
		code     string
		expected string
	}{
		{
			name:     "monthly data",
			station:  "1234",
			year:     2020,
			month:    5,
			code:     "3",
			expected: "https://climate.weather.gc.ca/climate_data/bulk_data_e.html?format=csv&stationID=1234&Year=2020&Month=5&Day=1&time=UTC&timeframe=3&submit=%20Download+Data",
		},
		{
			name:     "hourly data in december",
			station:  "51442",
			year:     1999,
			month:    12,
			code:     "1",
			expected: "https://climate.weather.gc.ca/climate_data/bulk_data_e.html?format=csv&stationID=51442&Year=1999&Month=12&Day=1&time=UTC&timeframe=1&submit=%20Download+Data",
		},
		{
			name:     "station with reserved characters is escaped",
			station:  "a&b",
			year:     2001,
			month:    1,
			code:     "2",
			expected: "https://climate.weather.gc.ca/climate_data/bulk_data_e.html?format=csv&stationID=a%26b&Year=2001&Month=1&Day=1&time=UTC&timeframe=2&submit=%20Download+Data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL(config.DefaultBaseURL, tt.station, tt.year, tt.month, tt.code)
			if got != tt.expected {
				t.Errorf("expected URL\n%s\ngot\n%s", tt.expected, got)
			}
			if again := BuildURL(config.DefaultBaseURL, tt.station, tt.year, tt.month, tt.code); again != got {
				t.Errorf("URL construction is not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func TestDestinationPath(t *testing.T) {
	if got := DestinationPath(".", "1234", "3", 2020, 5); got != "1234_3_2020-5.csv" {
		t.Errorf("expected 1234_3_2020-5.csv, got %q", got)
	}

	dir := filepath.Join("data", "out")
	expected := filepath.Join(dir, "27211_1_1999-11.csv")
	if got := DestinationPath(dir, "27211", "1", 1999, 11); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestTargets(t *testing.T) {
	cfg := testConfig(t, 2018, 2020)
	targets := Targets(cfg)

	if len(targets) != 36 {
		t.Fatalf("expected 36 targets, got %d", len(targets))
	}

	if targets[0].Year != 2018 || targets[0].Month != 1 {
		t.Errorf("expected first target 2018-1, got %d-%d", targets[0].Year, targets[0].Month)
	}
	if targets[12].Year != 2019 || targets[12].Month != 1 {
		t.Errorf("expected thirteenth target 2019-1, got %d-%d", targets[12].Year, targets[12].Month)
	}
	last := targets[len(targets)-1]
	if last.Year != 2020 || last.Month != 12 {
		t.Errorf("expected last target 2020-12, got %d-%d", last.Year, last.Month)
	}

	seenURLs := make(map[string]bool)
	seenPaths := make(map[string]bool)
	for _, target := range targets {
		if seenURLs[target.URL] {
			t.Errorf("duplicate URL %s", target.URL)
		}
		if seenPaths[target.Path] {
			t.Errorf("duplicate path %s", target.Path)
		}
		seenURLs[target.URL] = true
		seenPaths[target.Path] = true
	}

	expectedPath := filepath.Join(cfg.Directory, "1234_3_2019-7.csv")
	if targets[18].Path != expectedPath {
		t.Errorf("expected path %q, got %q", expectedPath, targets[18].Path)
	}
}

func TestTargets_SingleYear(t *testing.T) {
	targets := Targets(testConfig(t, 2020, 2020))
	if len(targets) != 12 {
		t.Fatalf("expected 12 targets, got %d", len(targets))
	}
	for i, target := range targets {
		if target.Month != i+1 {
			t.Errorf("expected month %d at index %d, got %d", i+1, i, target.Month)
		}
	}
}
