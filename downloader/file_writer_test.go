package downloader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// brokenReader returns some data and then fails
type brokenReader struct {
	sent bool
}

func (br *brokenReader) Read(p []byte) (int, error) {
	if !br.sent {
		br.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset by peer")
}

func TestFileWriter_WritesVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1234_3_2020-5.csv")
	payload := []byte("\xef\xbb\xbf\"Date/Time\",\"Mean Temp (\xc2\xb0C)\"\r\n\"2020-05\",\"11.2\"\r\n\x00")

	n, err := NewFileWriter().Write(path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("expected %d bytes written, got %d", len(payload), n)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("file contents differ from payload")
	}
}

func TestFileWriter_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.csv")
	if err := os.WriteFile(path, []byte("a much longer previous download"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileWriter().Write(path, strings.NewReader("new")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("expected file to be overwritten, got %q", got)
	}
}

func TestFileWriter_CreateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")

	_, err := NewFileWriter().Write(path, strings.NewReader("data"))
	if !IsDownloadError(err, ErrorLocalWrite) {
		t.Fatalf("expected local write error, got %v", err)
	}

	var de *DownloadError
	errors.As(err, &de)
	if de.Context["path"] != path {
		t.Errorf("expected path in error context, got %v", de.Context)
	}
}

func TestFileWriter_ReadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")

	n, err := NewFileWriter().Write(path, &brokenReader{})
	if !IsDownloadError(err, ErrorResponseBody) {
		t.Fatalf("expected response body error, got %v", err)
	}
	if n != int64(len("partial")) {
		t.Errorf("expected partial byte count, got %d", n)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "partial" {
		t.Errorf("expected partial file to remain on disk, got %q", got)
	}
}

func TestFileWriter_EmptyBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	n, err := NewFileWriter().Write(path, io.LimitReader(strings.NewReader("ignored"), 0))
	if err != nil || n != 0 {
		t.Fatalf("expected empty write, got %d, %v", n, err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() != 0 {
		t.Errorf("expected empty file to exist, got %v", err)
	}
}
