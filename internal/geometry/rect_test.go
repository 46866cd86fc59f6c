package geometry

import "testing"

func TestClampRect_Idempotent(t *testing.T) {
	bounds := Bounds{Width: 1920, Height: 1080}
	rects := []Rect{
		{X: -50, Y: -30, Width: 100, Height: 100},
		{X: 1900, Y: 1000, Width: 500, Height: 500},
		{X: 0, Y: 0, Width: 5, Height: 5},
		{X: 100, Y: 100, Width: 1920, Height: 1080},
		{X: 960, Y: 540, Width: 2000, Height: 3000},
	}

	for _, r := range rects {
		once := ClampRect(r, bounds, MinRegionSize)
		twice := ClampRect(once, bounds, MinRegionSize)
		if once != twice {
			t.Errorf("ClampRect not idempotent for %+v: once=%+v twice=%+v", r, once, twice)
		}
	}
}

func TestClampRect_BoundsInvariant(t *testing.T) {
	bounds := Bounds{Width: 1280, Height: 720}
	rects := []Rect{
		{X: -100, Y: -100, Width: 50, Height: 50},
		{X: 1270, Y: 710, Width: 400, Height: 400},
		{X: 600, Y: 300, Width: 10000, Height: 10000},
		{X: 0, Y: 0, Width: 1, Height: 1},
	}

	for _, r := range rects {
		got := ClampRect(r, bounds, MinRegionSize)
		if got.X < 0 || got.Y < 0 {
			t.Errorf("ClampRect(%+v) = %+v, origin out of bounds", r, got)
		}
		if got.Right() > bounds.Width || got.Bottom() > bounds.Height {
			t.Errorf("ClampRect(%+v) = %+v, extent out of bounds", r, got)
		}
		if got.Width < MinRegionSize || got.Height < MinRegionSize {
			t.Errorf("ClampRect(%+v) = %+v, below minimum size", r, got)
		}
	}
}

func TestClampRect_SizeResolvedBeforePosition(t *testing.T) {
	bounds := Bounds{Width: 1000, Height: 800}

	// Size is clamped first, then the position clamp uses the final size: a
	// 900-wide rectangle keeps its width and slides left to fit.
	got := ClampRect(Rect{X: 600, Y: 100, Width: 900, Height: 100}, bounds, MinRegionSize)
	if got.Width != 900 {
		t.Errorf("width = %d, want 900 (size kept)", got.Width)
	}
	if got.X != 100 {
		t.Errorf("x = %d, want 100 (slid to fit the kept size)", got.X)
	}
}

func TestClampRect_OversizedUsesFullBounds(t *testing.T) {
	bounds := Bounds{Width: 640, Height: 480}
	got := ClampRect(Rect{X: 50, Y: 50, Width: 9999, Height: 9999}, bounds, MinRegionSize)
	want := Rect{X: 0, Y: 0, Width: 640, Height: 480}
	if got != want {
		t.Errorf("ClampRect = %+v, want %+v", got, want)
	}
}

func TestRoundRect(t *testing.T) {
	got := RoundRect(1.4, 2.5, 3.49, 4.51)
	want := Rect{X: 1, Y: 3, Width: 3, Height: 5}
	if got != want {
		t.Errorf("RoundRect = %+v, want %+v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(110, 30) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(5, 30) {
		t.Error("point left of rect should be outside")
	}
}
