package portal

import "log"

// DefaultMaxSpan is the largest portal frame edge, in blocks.
const DefaultMaxSpan = 10

// Group partitions blocks into maximal face-connected components.
//
// Components are returned in the order their first block appears in the input.
// Repeated coordinates collapse into one block. Lookups go through a spatial
// hash so the fill is linear in the number of blocks on average.
func Group(blocks []Vec3i) [][]Vec3i {
	present := make(map[Vec3i]struct{}, len(blocks))
	for _, b := range blocks {
		present[b] = struct{}{}
	}

	visited := make(map[Vec3i]struct{}, len(present))
	var groups [][]Vec3i
	for _, start := range blocks {
		if _, ok := visited[start]; ok {
			continue
		}
		visited[start] = struct{}{}
		group := []Vec3i{}
		stack := []Vec3i{start}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, cur)
			for _, d := range faceOffsets {
				n := cur.add(d)
				if _, ok := present[n]; !ok {
					continue
				}
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				stack = append(stack, n)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Bounds returns the inclusive bounding box of a non-empty group.
func Bounds(group []Vec3i) (min, max Vec3i) {
	min, max = group[0], group[0]
	for _, b := range group[1:] {
		if b.X < min.X {
			min.X = b.X
		}
		if b.Y < min.Y {
			min.Y = b.Y
		}
		if b.Z < min.Z {
			min.Z = b.Z
		}
		if b.X > max.X {
			max.X = b.X
		}
		if b.Y > max.Y {
			max.Y = b.Y
		}
		if b.Z > max.Z {
			max.Z = b.Z
		}
	}
	return min, max
}

// WithinBounds reports whether the group's bounding box is at most maxSpan
// blocks wide along every axis. Width counts blocks, so a single block is 1 wide.
func WithinBounds(group []Vec3i, maxSpan int) bool {
	if len(group) == 0 {
		return false
	}
	min, max := Bounds(group)
	return max.X-min.X+1 <= maxSpan &&
		max.Y-min.Y+1 <= maxSpan &&
		max.Z-min.Z+1 <= maxSpan
}

// Portal is an accepted group together with its waypoint location.
type Portal struct {
	Blocks []Vec3i
	Center Vec3i
}

type Result struct {
	Portals []Portal
	// Rejected holds the block count of every group dropped for exceeding the span.
	Rejected []int
}

// Detect groups blocks, drops oversize groups and computes centroids for the rest.
// A nil logger disables the skip warnings.
func Detect(blocks []Vec3i, maxSpan int, logger *log.Logger) Result {
	if maxSpan <= 0 {
		maxSpan = DefaultMaxSpan
	}
	var res Result
	for _, g := range Group(blocks) {
		if !WithinBounds(g, maxSpan) {
			if logger != nil {
				logger.Printf("warning: portal group too large (%d blocks), skipping", len(g))
			}
			res.Rejected = append(res.Rejected, len(g))
			continue
		}
		res.Portals = append(res.Portals, Portal{Blocks: g, Center: Centroid(g)})
	}
	return res
}
