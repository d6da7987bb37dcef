package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger logs text records into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}
