// Package fallback converts whole documents with the external markitdown tool
// when the presentation cannot be parsed.
package fallback

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the executable looked up on PATH.
const DefaultBinary = "markitdown"

// executor abstracts os/exec so tests can stub the tool.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// MarkItDown runs the markitdown command line tool.
type MarkItDown struct {
	bin  string
	exec executor
}

// NewMarkItDown returns a converter for the given binary name or path.
// An empty name uses DefaultBinary.
func NewMarkItDown(bin string) *MarkItDown {
	if bin == "" {
		bin = DefaultBinary
	}
	return &MarkItDown{bin: bin, exec: osExecutor{}}
}

// Name returns the binary the converter runs.
func (m *MarkItDown) Name() string { return m.bin }

// Available reports whether the binary can be found.
func (m *MarkItDown) Available() bool {
	_, err := m.exec.LookPath(m.bin)
	return err == nil
}

// Convert runs markitdown on path and returns its markdown output.
func (m *MarkItDown) Convert(ctx context.Context, path string) (string, error) {
	if _, err := m.exec.LookPath(m.bin); err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", m.bin, err)
	}
	out, err := m.exec.Output(ctx, m.bin, path)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", m.bin, err)
	}
	return string(out), nil
}
