package waypoint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"portalmap.dev/internal/portal"
)

// Write emits the three-line header followed by one line per waypoint. The
// header is written even when wps is empty.
func Write(w io.Writer, wps []Waypoint) error {
	bw := bufio.NewWriter(w)
	for _, line := range []string{"#", FieldsComment, "#"} {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, wp := range wps {
		if _, err := bw.WriteString(wp.Line() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile replaces path with a waypoint file.
func WriteFile(path string, wps []Waypoint) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write waypoints: %w", err)
	}
	if err := Write(f, wps); err != nil {
		_ = f.Close()
		return fmt.Errorf("write waypoints %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write waypoints %s: %w", path, err)
	}
	return nil
}

// ParseLine extracts the coordinates from one data line. Comments, blank
// lines and lines without integer x/y/z fields report ok=false.
func ParseLine(line string) (pos portal.Vec3i, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return pos, false
	}
	parts := strings.Split(line, ":")
	if len(parts) < 6 || parts[0] != "waypoint" {
		return pos, false
	}
	var xyz [3]int
	for i := range xyz {
		v, err := strconv.Atoi(strings.TrimSpace(parts[3+i]))
		if err != nil {
			return pos, false
		}
		xyz[i] = v
	}
	return portal.Vec3i{X: xyz[0], Y: xyz[1], Z: xyz[2]}, true
}

// Parse returns the coordinates of every well-formed data line in file order.
// Malformed lines are skipped.
func Parse(r io.Reader) ([]portal.Vec3i, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var out []portal.Vec3i
	for sc.Scan() {
		if pos, ok := ParseLine(sc.Text()); ok {
			out = append(out, pos)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func ParseFile(path string) ([]portal.Vec3i, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
