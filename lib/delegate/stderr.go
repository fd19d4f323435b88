// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package delegate

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// StderrMode is the delegate stderr disposition. The original wrapper
// left this ambiguous (a commented-out redirect to /dev/null); here it
// is an explicit setting.
type StderrMode string

const (
	// StderrForward inherits the launcher's stderr. Training progress
	// and tracebacks appear on the operator's terminal.
	StderrForward StderrMode = "forward"

	// StderrDiscard routes delegate stderr to the null device.
	StderrDiscard StderrMode = "discard"

	// StderrCapture streams delegate stderr into a zstd-compressed
	// log file. Long training runs produce megabytes of repetitive
	// progress text, which compresses well.
	StderrCapture StderrMode = "capture"
)

// ParseStderrMode parses a mode string from config or flags.
func ParseStderrMode(s string) (StderrMode, error) {
	switch StderrMode(s) {
	case StderrForward, StderrDiscard, StderrCapture:
		return StderrMode(s), nil
	default:
		return "", fmt.Errorf("unknown stderr mode %q (valid: forward, discard, capture)", s)
	}
}

// captureWriter is the stderr sink for StderrCapture: a zstd stream
// over a log file. Close flushes the compressed stream before closing
// the file; both must succeed for the log to be readable.
type captureWriter struct {
	file    *os.File
	encoder *zstd.Encoder
}

// newCaptureWriter opens path for writing and wraps it in a zstd
// encoder at the default level (good ratio for text without excessive
// CPU).
func newCaptureWriter(path string) (*captureWriter, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating stderr log %s: %w", path, err)
	}

	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("initializing stderr log compression: %w", err)
	}

	return &captureWriter{file: file, encoder: encoder}, nil
}

func (w *captureWriter) Write(p []byte) (int, error) {
	return w.encoder.Write(p)
}

func (w *captureWriter) Close() error {
	encodeErr := w.encoder.Close()
	closeErr := w.file.Close()
	if encodeErr != nil {
		return fmt.Errorf("flushing stderr log: %w", encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing stderr log: %w", closeErr)
	}
	return nil
}

var _ io.WriteCloser = (*captureWriter)(nil)
