// Package downloader implements the bulk fetch loop that retrieves historical
// climate CSV files from Climate Services Canada, one file per
// station/timeframe/year/month.
//
// The package defines the collaborators the loop drives:
//   - Fetcher: performs one blocking HTTP GET per FetchTarget
//   - Writer: persists a response body verbatim to the destination path
//   - ProgressReporter: receives one tick per saved file
//
// Responses are classified into FetchOutcome values. A non-2xx status or a
// 2xx response whose Content-Type is not an "application" type aborts the
// whole run; transport failures skip the current month; local write failures
// are fatal.
package downloader
