package portal

import "fmt"

// Vec3i is a block coordinate.
type Vec3i struct {
	X int
	Y int
	Z int
}

func (v Vec3i) ToArray() [3]int { return [3]int{v.X, v.Y, v.Z} }

func (v Vec3i) String() string { return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z) }

// Less orders positions lexicographically by X, then Y, then Z.
func (v Vec3i) Less(o Vec3i) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	if v.Y != o.Y {
		return v.Y < o.Y
	}
	return v.Z < o.Z
}

func Manhattan(a, b Vec3i) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y) + abs(a.Z-b.Z)
}

// Adjacent reports whether two blocks share a face.
func Adjacent(a, b Vec3i) bool { return Manhattan(a, b) == 1 }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var faceOffsets = [6]Vec3i{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

func (v Vec3i) add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }
