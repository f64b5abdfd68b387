// Package coordset loads portal coordinate snapshots and compares them.
package coordset

import (
	"fmt"
	"log"
	"sort"

	"portalmap.dev/internal/blocklog"
	"portalmap.dev/internal/portal"
	"portalmap.dev/internal/waypoint"
)

// Set is a set of block coordinates.
type Set map[portal.Vec3i]struct{}

func Of(ps ...portal.Vec3i) Set {
	s := make(Set, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s Set) Add(p portal.Vec3i) { s[p] = struct{}{} }

func (s Set) Has(p portal.Vec3i) bool {
	_, ok := s[p]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members ordered by X, then Y, then Z.
func (s Set) Sorted() []portal.Vec3i {
	out := make([]portal.Vec3i, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Diff returns the coordinates present in after and absent from before.
// Matching is exact.
func Diff(before, after Set) Set {
	out := make(Set)
	for p := range after {
		if !before.Has(p) {
			out.Add(p)
		}
	}
	return out
}

type Kind int

const (
	KindWaypoints Kind = iota
	KindBlockLog
)

func (k Kind) String() string {
	switch k {
	case KindBlockLog:
		return "block log"
	case KindWaypoints:
		return "waypoint file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf picks the source format from the file extension.
func KindOf(path string) Kind {
	if blocklog.IsLogPath(path) {
		return KindBlockLog
	}
	return KindWaypoints
}

type Options struct {
	// MaxSpan bounds portal groups found in block logs; <= 0 uses portal.DefaultMaxSpan.
	MaxSpan int
	Logger  *log.Logger
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// Load reads a snapshot of portal locations. Block logs are grouped and
// collapsed to portal centers; waypoint files contribute the coordinates of
// every well-formed line.
func Load(path string, opts Options) (Set, error) {
	switch KindOf(path) {
	case KindBlockLog:
		l, err := blocklog.Read(path)
		if err != nil {
			return nil, err
		}
		opts.logf("loaded %d blocks from %s", len(l.Blocks), path)
		res := portal.Detect(l.Positions(), opts.MaxSpan, opts.Logger)
		s := make(Set, len(res.Portals))
		for _, p := range res.Portals {
			s.Add(p.Center)
		}
		opts.logf("loaded %d portals from block log %s", s.Len(), path)
		return s, nil
	default:
		coords, err := waypoint.ParseFile(path)
		if err != nil {
			return nil, err
		}
		s := Of(coords...)
		opts.logf("loaded %d portal coordinates from waypoint file %s", s.Len(), path)
		return s, nil
	}
}
