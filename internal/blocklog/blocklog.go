// Package blocklog reads the JSON block logs written by the in-game block logger.
package blocklog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"portalmap.dev/internal/portal"
)

var (
	ErrNotFound  = errors.New("block log not found")
	ErrMalformed = errors.New("malformed block log")
	ErrNoBlocks  = errors.New(`block log has no "blocks" key`)
)

type Block struct {
	X         int   `json:"x"`
	Y         int   `json:"y"`
	Z         int   `json:"z"`
	FoundTime int64 `json:"found_time,omitempty"`
}

type Log struct {
	BlockType   string  `json:"block_type,omitempty"`
	CreatedTime int64   `json:"created_time,omitempty"`
	Blocks      []Block `json:"blocks"`
}

// Positions returns the logged coordinates in file order.
func (l Log) Positions() []portal.Vec3i {
	out := make([]portal.Vec3i, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		out = append(out, portal.Vec3i{X: b.X, Y: b.Y, Z: b.Z})
	}
	return out
}

// IsLogPath reports whether path names a block log (.json or .json.zst).
func IsLogPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".json") || strings.HasSuffix(p, ".json.zst")
}

// Read loads a block log. Files ending in .zst are zstd-compressed.
func Read(path string) (Log, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Log{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Log{}, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 64*1024)
	compressed := strings.HasSuffix(strings.ToLower(path), ".zst")
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return Log{}, fmt.Errorf("%w: %s: zstd: %v", ErrMalformed, path, err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if compressed {
			return Log{}, fmt.Errorf("%w: %s: zstd: %v", ErrMalformed, path, err)
		}
		return Log{}, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := Decode(data)
	if err != nil {
		return Log{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Decode parses and structurally checks a block log document. Only the
// coordinates must be well-formed; metadata fields of an unexpected type are
// left at their zero value.
func Decode(data []byte) (Log, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Log{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, isObj := doc.(map[string]any)
	if isObj {
		if _, ok := obj["blocks"]; !ok {
			return Log{}, ErrNoBlocks
		}
	}
	if err := validate(doc); err != nil {
		return Log{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var l Log
	l.BlockType, _ = obj["block_type"].(string)
	l.CreatedTime, _ = int64Of(obj["created_time"])
	items, _ := obj["blocks"].([]any)
	l.Blocks = make([]Block, 0, len(items))
	for i, it := range items {
		m, _ := it.(map[string]any)
		var xyz [3]int
		for j, key := range [3]string{"x", "y", "z"} {
			v, err := int64Of(m[key])
			if err != nil || int64(int(v)) != v {
				return Log{}, fmt.Errorf("%w: blocks[%d].%s: %v out of range", ErrMalformed, i, key, m[key])
			}
			xyz[j] = int(v)
		}
		found, _ := int64Of(m["found_time"])
		l.Blocks = append(l.Blocks, Block{X: xyz[0], Y: xyz[1], Z: xyz[2], FoundTime: found})
	}
	return l, nil
}

// int64Of converts an integral JSON number, including forms like 64.0.
func int64Of(v any) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("not an int64: %s", n)
	}
	return int64(f), nil
}

// Entry describes one log file in a directory listing.
type Entry struct {
	Name      string
	Path      string
	BlockType string
	Blocks    int
	Err       error
}

// List returns the block logs in dir, newest first. Log file names start with
// a millisecond timestamp, so reverse name order is reverse creation order.
// Logs that fail to load are still listed with Err set.
func List(dir string) ([]Entry, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !IsLogPath(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		ent := Entry{Name: name, Path: path}
		l, err := Read(path)
		if err != nil {
			ent.Err = err
		} else {
			ent.BlockType = l.BlockType
			ent.Blocks = len(l.Blocks)
		}
		out = append(out, ent)
	}
	return out, nil
}
