package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"climate-bulk-download/config"
)

// binaryContentTypePrefix marks real CSV payloads; the server answers bad
// parameters with a 200 HTML page instead.
const binaryContentTypePrefix = "application"

const serverValidationNotice = "Server did not return expected data type - check your station ID and other parameters."

// NewRunID returns a correlation identifier for one run
func NewRunID() string {
	return uuid.NewString()
}

// BulkFetcher runs the sequential fetch loop over every (year, month) pair
type BulkFetcher struct {
	cfg      config.RunConfig
	fetcher  Fetcher
	writer   Writer
	reporter ProgressReporter
	logger   *zap.Logger
	console  io.Writer
	runID    string
}

// Option configures a BulkFetcher
type Option func(*BulkFetcher)

// WithFetcher replaces the HTTP fetcher
func WithFetcher(f Fetcher) Option {
	return func(bf *BulkFetcher) { bf.fetcher = f }
}

// WithWriter replaces the filesystem writer
func WithWriter(w Writer) Option {
	return func(bf *BulkFetcher) { bf.writer = w }
}

// WithReporter sets the progress reporter
func WithReporter(r ProgressReporter) Option {
	return func(bf *BulkFetcher) { bf.reporter = r }
}

// WithLogger sets the structured logger
func WithLogger(l *zap.Logger) Option {
	return func(bf *BulkFetcher) { bf.logger = l }
}

// WithConsole sets where human-readable notices are printed
func WithConsole(w io.Writer) Option {
	return func(bf *BulkFetcher) { bf.console = w }
}

// WithRunID overrides the generated run identifier
func WithRunID(id string) Option {
	return func(bf *BulkFetcher) { bf.runID = id }
}

// NewBulkFetcher creates a BulkFetcher for a validated configuration. The
// configuration is copied and never re-read from the caller.
func NewBulkFetcher(cfg *config.RunConfig, opts ...Option) *BulkFetcher {
	bf := &BulkFetcher{
		cfg:      *cfg,
		reporter: NopReporter{},
		logger:   zap.NewNop(),
		console:  os.Stdout,
	}
	for _, opt := range opts {
		opt(bf)
	}

	if bf.fetcher == nil {
		bf.fetcher = NewHTTPFetcher(&bf.cfg)
	}
	if bf.writer == nil {
		bf.writer = NewFileWriter()
	}
	if bf.runID == "" {
		bf.runID = NewRunID()
	}
	bf.logger = bf.logger.With(zap.String("run_id", bf.runID))

	return bf
}

// RunID returns the correlation identifier of this fetcher's run
func (bf *BulkFetcher) RunID() string {
	return bf.runID
}

// Run fetches every target in order. An abort condition stops all remaining
// iterations and is reported as RunAborted with the reason set. A local write
// failure is returned as an error alongside the partial result.
func (bf *BulkFetcher) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: bf.runID, Status: RunCompleted}

	defer func() {
		if err := bf.reporter.Finish(); err != nil {
			bf.logger.Debug("progress reporter finish failed", zap.Error(err))
		}
	}()

	bf.logger.Info("starting bulk download",
		zap.String("station", bf.cfg.StationID),
		zap.String("timeframe", bf.cfg.Timeframe.String()),
		zap.Int("start_year", bf.cfg.StartYear),
		zap.Int("end_year", bf.cfg.EndYear),
		zap.Int("targets", bf.cfg.TotalTargets()),
		zap.String("directory", bf.cfg.Directory),
		zap.Duration("connect_timeout", bf.cfg.ConnectTimeout),
	)
	bf.logger.Debug("receive timeout is accepted but not applied to requests",
		zap.Duration("receive_timeout", bf.cfg.ReceiveTimeout))

years:
	for year := bf.cfg.StartYear; year <= bf.cfg.EndYear; year++ {
		for month := 1; month <= 12; month++ {
			if err := ctx.Err(); err != nil {
				result.Status = RunAborted
				result.Reason = NewDownloadErrorWithCause(ErrorCancelled, "download cancelled", err).
					WithContext("year", year).
					WithContext("month", month)
				break years
			}

			target := NewFetchTarget(&bf.cfg, year, month)
			result.Attempts++
			outcome, err := bf.fetchOne(ctx, target)

			switch outcome {
			case OutcomeSaved:
				result.Saved++
				continue
			case OutcomeSkippedTransient:
				result.Skipped++
				continue
			}

			result.Status = RunAborted
			result.Reason = err

			var de *DownloadError
			if errors.As(err, &de) && de.Type.Local() {
				result.Duration = time.Since(start)
				bf.logger.Error("fatal local failure", zap.Error(err), zap.String("path", target.Path))
				return result, err
			}
			break years
		}
	}

	result.Duration = time.Since(start)

	if result.Status == RunAborted {
		bf.logger.Error("bulk download aborted",
			zap.Error(result.Reason),
			zap.Int("attempts", result.Attempts),
			zap.Int("saved", result.Saved),
			zap.Int("skipped", result.Skipped),
		)
	} else {
		bf.logger.Info("bulk download finished",
			zap.Int("attempts", result.Attempts),
			zap.Int("saved", result.Saved),
			zap.Int("skipped", result.Skipped),
			zap.Duration("duration", result.Duration),
		)
	}

	return result, nil
}

// fetchOne requests, validates and persists a single target
func (bf *BulkFetcher) fetchOne(ctx context.Context, target FetchTarget) (FetchOutcome, error) {
	log := bf.logger.With(zap.Int("year", target.Year), zap.Int("month", target.Month))
	log.Debug("requesting", zap.String("url", target.URL))

	resp, err := bf.fetcher.Fetch(ctx, target)
	if err != nil {
		if ctx.Err() != nil {
			return OutcomeAbortRun, NewDownloadErrorWithCause(ErrorCancelled, "download cancelled", ctx.Err()).
				WithContext("url", target.URL)
		}
		var de *DownloadError
		if errors.As(err, &de) && de.Type.Fatal() {
			log.Error("request could not be issued", zap.String("url", target.URL), zap.Error(err))
			return OutcomeAbortRun, err
		}
		fmt.Fprintln(bf.console, "I/O or transport error occurred.")
		log.Warn("skipping month after transport error", zap.String("url", target.URL), zap.Error(err))
		return OutcomeSkippedTransient, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fmt.Fprintln(bf.console, resp.Status)
		fmt.Fprintln(bf.console, resp.URL)
		return OutcomeAbortRun, NewDownloadError(ErrorHTTPStatus,
			fmt.Sprintf("failed to retrieve data from server with URL %s. Error: %d", target.URL, resp.StatusCode)).
			WithContext("url", target.URL).
			WithContext("status_code", resp.StatusCode)
	}

	if !strings.HasPrefix(resp.ContentType, binaryContentTypePrefix) {
		fmt.Fprintln(bf.console, serverValidationNotice)
		return OutcomeAbortRun, NewDownloadError(ErrorServerValidation,
			fmt.Sprintf("unexpected content type %q from %s", resp.ContentType, target.URL)).
			WithContext("url", target.URL).
			WithContext("content_type", resp.ContentType)
	}

	n, err := bf.writer.Write(target.Path, resp.Body)
	if err != nil {
		if !IsDownloadError(err) {
			err = NewDownloadErrorWithCause(ErrorLocalWrite, "failed to write output file", err).
				WithContext("path", target.Path)
		}
		return OutcomeAbortRun, err
	}

	log.Debug("saved", zap.String("path", target.Path), zap.Int64("bytes", n))

	if err := bf.reporter.Tick(); err != nil {
		log.Debug("progress tick failed", zap.Error(err))
	}

	return OutcomeSaved, nil
}
