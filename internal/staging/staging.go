// Package staging places the user's label file into the artifact
// directory under its canonical name before a launch.
package staging

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/classifai/trainlaunch/internal/domain"
)

// StagingError reports a failed label-file copy or transcription. It is
// fatal and raised before the external trainer is invoked.
type StagingError struct {
	Op   string
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("staging label file: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

// Stage writes the label file at src to dst, preserving row and column
// content exactly: no header, no renaming, no reordering. The strategy
// depends on the platform: POSIX does a direct byte copy, Windows reads
// the file as delimited text and rewrites it with LF endings in a single
// pass so the trainer never sees CRLF-corrupted rows.
func Stage(src, dst string, platform domain.Platform, delimiter string) error {
	if platform == domain.PlatformWindows {
		return transcribe(src, dst, delimiter)
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &StagingError{Op: "open", Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &StagingError{Op: "create", Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &StagingError{Op: "copy", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &StagingError{Op: "close", Path: dst, Err: err}
	}
	return nil
}

// transcribe reads src as delimited text and appends every row to dst in
// one pass, unquoted, with no header row. Field content is preserved
// byte for byte; only the line-ending representation is normalized.
func transcribe(src, dst, delimiter string) error {
	in, err := os.Open(src)
	if err != nil {
		return &StagingError{Op: "open", Path: src, Err: err}
	}
	defer in.Close()

	comma := ','
	if delimiter != "" {
		comma = []rune(delimiter)[0]
	}
	reader := csv.NewReader(in)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	out, err := os.Create(dst)
	if err != nil {
		return &StagingError{Op: "create", Path: dst, Err: err}
	}
	w := bufio.NewWriter(out)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return &StagingError{Op: "read", Path: src, Err: err}
		}
		if _, err := w.WriteString(strings.Join(record, string(comma)) + "\n"); err != nil {
			out.Close()
			return &StagingError{Op: "write", Path: dst, Err: err}
		}
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return &StagingError{Op: "flush", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &StagingError{Op: "close", Path: dst, Err: err}
	}
	return nil
}
