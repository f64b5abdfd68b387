// Package waypoint reads and writes Xaero's minimap waypoint files.
//
// A data line looks like
//
//	waypoint:portal n12 n3:P:-12:4:-3:13:false:0:gui.xaero_default:false:0:0:false
//
// and the fields are, in order, the literal "waypoint", name, initials, x, y,
// z, color, disabled, type, set, rotate_on_tp, tp_yaw, visibility_type and
// destination.
package waypoint

import (
	"strconv"
	"strings"

	"portalmap.dev/internal/portal"
)

// FieldsComment is the field legend Xaero writes at the top of every file.
const FieldsComment = "#waypoint:name:initials:x:y:z:color:disabled:type:set:rotate_on_tp:tp_yaw:visibility_type:destination"

const (
	DefaultNamePrefix = "portal"
	DefaultInitials   = "P"
	DefaultColor      = 13
	DefaultSet        = "gui.xaero_default"
)

// Style holds the per-file display attributes shared by every generated waypoint.
type Style struct {
	NamePrefix string
	Initials   string
	Color      int
	Set        string
}

func DefaultStyle() Style {
	return Style{
		NamePrefix: DefaultNamePrefix,
		Initials:   DefaultInitials,
		Color:      DefaultColor,
		Set:        DefaultSet,
	}
}

type Waypoint struct {
	Name        string
	Initials    string
	X, Y, Z     int
	Color       int
	Disabled    bool
	Type        int
	Set         string
	RotateOnTp  bool
	TpYaw       int
	Visibility  int
	Destination bool
}

// New builds the waypoint for a portal centered at pos.
func New(style Style, pos portal.Vec3i) Waypoint {
	return Waypoint{
		Name:     Name(style.NamePrefix, pos.X, pos.Z),
		Initials: style.Initials,
		X:        pos.X,
		Y:        pos.Y,
		Z:        pos.Z,
		Color:    style.Color,
		Set:      style.Set,
	}
}

func (w Waypoint) Pos() portal.Vec3i { return portal.Vec3i{X: w.X, Y: w.Y, Z: w.Z} }

// FormatCoord renders a coordinate without a sign character: negatives get an
// "n" prefix, so -12 becomes "n12".
func FormatCoord(v int) string {
	if v < 0 {
		// -v overflows for math.MinInt; format the unsigned magnitude instead.
		return "n" + strconv.FormatUint(uint64(-(v+1))+1, 10)
	}
	return strconv.Itoa(v)
}

// Name returns "<prefix> <x> <z>", e.g. "portal n12 n3".
func Name(prefix string, x, z int) string {
	if prefix == "" {
		prefix = DefaultNamePrefix
	}
	return prefix + " " + FormatCoord(x) + " " + FormatCoord(z)
}

// Line renders the waypoint as one file line, without the trailing newline.
func (w Waypoint) Line() string {
	var b strings.Builder
	b.WriteString("waypoint:")
	b.WriteString(w.Name)
	b.WriteByte(':')
	b.WriteString(w.Initials)
	for _, v := range []int{w.X, w.Y, w.Z, w.Color} {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(w.Disabled))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(w.Type))
	b.WriteByte(':')
	b.WriteString(w.Set)
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(w.RotateOnTp))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(w.TpYaw))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(w.Visibility))
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(w.Destination))
	return b.String()
}
