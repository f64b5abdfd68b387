package portal

// Centroid returns the mean block of a group, each axis rounded half to even
// (2.5 -> 2, 3.5 -> 4, -0.5 -> 0). The mean is computed exactly on integers.
// Callers must not pass an empty group.
func Centroid(group []Vec3i) Vec3i {
	if len(group) == 0 {
		panic("portal: centroid of empty group")
	}
	var sx, sy, sz int
	for _, b := range group {
		sx += b.X
		sy += b.Y
		sz += b.Z
	}
	n := len(group)
	return Vec3i{X: roundDiv(sx, n), Y: roundDiv(sy, n), Z: roundDiv(sz, n)}
}

// roundDiv returns sum/n rounded half to even, n > 0.
func roundDiv(sum, n int) int {
	q := sum / n
	r := sum % n
	if r < 0 {
		q--
		r += n
	}
	// q <= sum/n < q+1, with fractional part r/n.
	switch twice := 2 * r; {
	case twice > n:
		return q + 1
	case twice == n && q%2 != 0:
		return q + 1
	default:
		return q
	}
}
