package portal

import "testing"

func TestCentroid_SingleBlock(t *testing.T) {
	b := Vec3i{-12, 4, -3}
	if got := Centroid([]Vec3i{b}); got != b {
		t.Fatalf("got %v want %v", got, b)
	}
}

func TestCentroid_RoundsHalfToEven(t *testing.T) {
	cases := []struct {
		name  string
		group []Vec3i
		want  Vec3i
	}{
		{"0.5 rounds down", []Vec3i{{0, 0, 0}, {1, 0, 0}}, Vec3i{0, 0, 0}},
		{"1.5 rounds up", []Vec3i{{1, 0, 0}, {2, 0, 0}}, Vec3i{2, 0, 0}},
		{"-0.5 rounds to 0", []Vec3i{{-1, 0, 0}, {0, 0, 0}}, Vec3i{0, 0, 0}},
		{"-1.5 rounds to -2", []Vec3i{{-2, 0, 0}, {-1, 0, 0}}, Vec3i{-2, 0, 0}},
		{"thirds", []Vec3i{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, Vec3i{1, 0, 0}},
		{"nether portal", []Vec3i{
			{-201, 70, 33}, {-201, 71, 33}, {-201, 72, 33},
			{-200, 70, 33}, {-200, 71, 33}, {-200, 72, 33},
		}, Vec3i{-200, 71, 33}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Centroid(tc.group); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestCentroid_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty group")
		}
	}()
	Centroid(nil)
}

func TestRoundDiv(t *testing.T) {
	cases := []struct{ sum, n, want int }{
		{5, 2, 2}, {7, 2, 4}, {-5, 2, -2}, {-7, 2, -4},
		{1, 3, 0}, {2, 3, 1}, {-1, 3, 0}, {-2, 3, -1},
		{9, 3, 3}, {-9, 3, -3},
	}
	for _, tc := range cases {
		if got := roundDiv(tc.sum, tc.n); got != tc.want {
			t.Fatalf("roundDiv(%d, %d): got %d want %d", tc.sum, tc.n, got, tc.want)
		}
	}
}
