package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"portalmap.dev/internal/portal"
)

// JSONLZstdWriter appends one JSON document per line to a zstd-compressed file.
type JSONLZstdWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewJSONLZstdWriter(path string) *JSONLZstdWriter {
	return &JSONLZstdWriter{path: path}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Discard closes the writer and removes anything it wrote.
func (w *JSONLZstdWriter) Discard() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.closeLocked()
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLZstdWriter) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if w.w != nil {
		keep(w.w.Flush())
	}
	if w.enc != nil {
		keep(w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		keep(w.f.Close())
		w.f = nil
	}
	w.w = nil
	return firstErr
}

const (
	KindPortal   = "PORTAL"
	KindRejected = "REJECTED"
	KindSummary  = "SUMMARY"
)

// RunEntry is one line of a run report.
type RunEntry struct {
	Kind   string  `json:"kind"`
	Mode   string  `json:"mode,omitempty"`
	Index  int     `json:"index,omitempty"`
	Name   string  `json:"name,omitempty"`
	Pos    *[3]int `json:"pos,omitempty"`
	Blocks int     `json:"blocks,omitempty"`

	Inputs    []string `json:"inputs,omitempty"`
	Output    string   `json:"output,omitempty"`
	Waypoints int      `json:"waypoints,omitempty"`
	Rejected  int      `json:"rejected,omitempty"`
}

// RunLogger writes a compressed JSONL report of one conversion run.
// A nil *RunLogger discards everything.
type RunLogger struct{ w *JSONLZstdWriter }

func NewRunLogger(path string) *RunLogger {
	return &RunLogger{w: NewJSONLZstdWriter(path)}
}

func (l *RunLogger) Portal(i int, name string, pos portal.Vec3i, blocks int) error {
	if l == nil {
		return nil
	}
	xyz := pos.ToArray()
	return l.w.Write(RunEntry{Kind: KindPortal, Index: i, Name: name, Pos: &xyz, Blocks: blocks})
}

func (l *RunLogger) Rejected(blocks int) error {
	if l == nil {
		return nil
	}
	return l.w.Write(RunEntry{Kind: KindRejected, Blocks: blocks})
}

func (l *RunLogger) Summary(v RunEntry) error {
	if l == nil {
		return nil
	}
	v.Kind = KindSummary
	return l.w.Write(v)
}

func (l *RunLogger) Close() error {
	if l == nil {
		return nil
	}
	return l.w.Close()
}

// Discard drops a report whose run failed.
func (l *RunLogger) Discard() error {
	if l == nil {
		return nil
	}
	return l.w.Discard()
}
