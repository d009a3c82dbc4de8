package kernel

import (
	"math"
	"testing"
)

var testSeeds = []int32{0, 1, -7, 12345, math.MaxInt32, math.MinInt32}

func TestNew_Deterministic(t *testing.T) {
	a, b := New(3), New(3)
	if a.Permutation() != b.Permutation() {
		t.Error("equal seeds produced different permutations")
	}
	if New(4).Permutation() == a.Permutation() {
		t.Error("seeds 3 and 4 produced the same permutation")
	}
	if a.Seed() != 3 {
		t.Errorf("Seed() = %d, want 3", a.Seed())
	}
}

func TestNew_PermutationIsPermutation(t *testing.T) {
	for _, seed := range testSeeds {
		var seen [TableSize]bool
		for _, v := range New(seed).Permutation() {
			if seen[v] {
				t.Fatalf("seed %d: value %d appears twice", seed, v)
			}
			seen[v] = true
		}
	}
}

func TestKernel_PermWraps(t *testing.T) {
	k := New(9)
	tests := []struct{ x, same int }{
		{-1, 255},
		{256, 0},
		{-256, 0},
		{1000, 1000 % 256},
	}
	for _, tt := range tests {
		if k.Perm(tt.x) != k.Perm(tt.same) {
			t.Errorf("Perm(%d) = %d, want Perm(%d) = %d", tt.x, k.Perm(tt.x), tt.same, k.Perm(tt.same))
		}
		if p := k.Perm(tt.x); p < 0 || p > 255 {
			t.Errorf("Perm(%d) = %d, outside [0, 255]", tt.x, p)
		}
	}
}

func TestKernel_Perm2D(t *testing.T) {
	k := New(21)
	for _, c := range [][2]int{{0, 0}, {5, 9}, {255, 255}, {-3, 17}, {300, -40}} {
		px, py := c[0], c[1]
		a := k.Perm(px) + py
		b := k.Perm(px+1) + py
		wantAA, wantAB, wantBA, wantBB := k.Perm(a), k.Perm(a+1), k.Perm(b), k.Perm(b+1)

		aa, ab, ba, bb := k.Perm2D(px, py)
		if aa != wantAA || ab != wantAB || ba != wantBA || bb != wantBB {
			t.Errorf("Perm2D(%d, %d) = %d %d %d %d, want %d %d %d %d",
				px, py, aa, ab, ba, bb, wantAA, wantAB, wantBA, wantBB)
		}
	}
}

func TestKernel_IntValue(t *testing.T) {
	k := New(5)
	for x := -4; x <= 4; x++ {
		for y := -4; y <= 4; y++ {
			pi := IVec3{x, y, x - y}
			v := k.IntValue(pi)
			if v < -1 || v > 1 {
				t.Fatalf("IntValue(%v) = %v, outside [-1, 1]", pi, v)
			}
			want := float64(k.Perm(k.Perm(k.Perm(x)+y)+x-y))/255*2 - 1
			if v != want {
				t.Fatalf("IntValue(%v) = %v, want %v", pi, v, want)
			}
		}
	}
}

func TestKernel_GradPerm(t *testing.T) {
	k := New(77)
	p := Vec3{0.25, -0.5, 0.75}
	for x := range 2 * TableSize {
		want := Gradient(k.Perm(x) % 12).Dot(p)
		if got := k.GradPerm(x, p); got != want {
			t.Fatalf("GradPerm(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestKernel_GradientCoherentLatticeZero(t *testing.T) {
	for _, seed := range testSeeds {
		k := New(seed)
		for i := -6; i <= 6; i++ {
			for j := -6; j <= 6; j++ {
				for l := -6; l <= 6; l += 3 {
					p := Vec3{float64(i), float64(j), float64(l)}
					if v := k.GradientCoherent(p); v != 0 {
						t.Fatalf("seed %d: GradientCoherent(%v) = %v, want 0", seed, p, v)
					}
				}
			}
		}
	}
}

func TestKernel_GradientCoherentRangeAndContinuity(t *testing.T) {
	k := New(1)
	const eps = 1e-6
	for i := range 2000 {
		f := float64(i)
		p := Vec3{math.Sin(f) * 20, math.Cos(f*1.3) * 20, f*0.01 - 10}
		v := k.GradientCoherent(p)
		if v < -1.5 || v > 1.5 || math.IsNaN(v) {
			t.Fatalf("GradientCoherent(%v) = %v, out of range", p, v)
		}
		if d := math.Abs(k.GradientCoherent(Vec3{p.X + eps, p.Y, p.Z}) - v); d > 1e-4 {
			t.Fatalf("GradientCoherent jumps by %v near %v", d, p)
		}
		if got := k.GradientCoherentXYZ(p.X, p.Y, p.Z); got != v {
			t.Fatalf("GradientCoherentXYZ = %v, GradientCoherent = %v", got, v)
		}
	}
}

func TestKernel_ConcurrentUse(t *testing.T) {
	k := New(8)
	want := k.GradientCoherent(Vec3{0.3, 0.6, 0.9})
	done := make(chan float64, 8)
	for range 8 {
		go func() { done <- k.GradientCoherent(Vec3{0.3, 0.6, 0.9}) }()
	}
	for range 8 {
		if got := <-done; got != want {
			t.Errorf("concurrent GradientCoherent = %v, want %v", got, want)
		}
	}
}
