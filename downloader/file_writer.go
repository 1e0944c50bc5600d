package downloader

import (
	"io"
	"os"
)

// FileWriter implements Writer on the local filesystem
type FileWriter struct {
	perm os.FileMode
}

// NewFileWriter creates a FileWriter that creates files with mode 0644
func NewFileWriter() *FileWriter {
	return &FileWriter{perm: 0o644}
}

// readErrorReader records read failures so they can be told apart from write failures
type readErrorReader struct {
	r   io.Reader
	err error
}

func (rr *readErrorReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF {
		rr.err = err
	}
	return n, err
}

// Write implements the Writer interface. Bytes are streamed unmodified; a
// partially written file is left in place on failure.
func (fw *FileWriter) Write(path string, r io.Reader) (int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fw.perm)
	if err != nil {
		return 0, NewDownloadErrorWithCause(ErrorLocalWrite, "failed to create output file", err).
			WithContext("path", path)
	}
	defer file.Close()

	src := &readErrorReader{r: r}
	n, err := io.Copy(file, src)
	if err != nil {
		if src.err != nil {
			return n, NewDownloadErrorWithCause(ErrorResponseBody, "failed to read response body", src.err).
				WithContext("path", path)
		}
		return n, NewDownloadErrorWithCause(ErrorLocalWrite, "failed to write output file", err).
			WithContext("path", path)
	}

	if err := file.Close(); err != nil {
		return n, NewDownloadErrorWithCause(ErrorLocalWrite, "failed to close output file", err).
			WithContext("path", path)
	}

	return n, nil
}
