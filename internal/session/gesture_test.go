package session

import (
	"errors"
	"testing"

	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/region"
)

func setupCropSession(t *testing.T) *Session {
	t.Helper()
	s, _ := newTestSession(t)
	s.AddAsset(primaryAsset())
	if err := s.SetPrimary("prim"); err != nil {
		t.Fatal(err)
	}
	// Viewport matches native dims so scale is 1 and deltas map directly.
	s.SetViewport(1920, 1080)
	return s
}

func TestSession_GestureMovesCropRegion(t *testing.T) {
	s := setupCropSession(t)

	// Shrink the seeded full-frame region first so a move has room.
	for field, v := range map[string]string{"x": "100", "y": "100", "width": "400", "height": "300"} {
		if err := s.SetRegionDraft(field, v); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CommitRegionDrafts(); err != nil {
		t.Fatal(err)
	}

	if err := s.BeginGesture(region.KindMove, "", 500, 500); err != nil {
		t.Fatalf("BeginGesture: %v", err)
	}
	got, err := s.UpdateGesture(550, 480)
	if err != nil {
		t.Fatalf("UpdateGesture: %v", err)
	}
	s.EndGesture()

	want := geometry.Rect{X: 150, Y: 80, Width: 400, Height: 300}
	if got != want {
		t.Errorf("region after move = %+v, want %+v", got, want)
	}
	st := s.Snapshot()
	if st.CropRegion == nil || *st.CropRegion != want {
		t.Errorf("snapshot region = %+v, want %+v", st.CropRegion, want)
	}
}

func TestSession_GestureScalesPointerDelta(t *testing.T) {
	s := setupCropSession(t)
	// Half-size viewport: scale 0.5, so 50 viewport px is 100 native px.
	s.SetViewport(960, 540)

	for field, v := range map[string]string{"x": "200", "y": "200", "width": "400", "height": "300"} {
		if err := s.SetRegionDraft(field, v); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CommitRegionDrafts(); err != nil {
		t.Fatal(err)
	}

	if err := s.BeginGesture(region.KindMove, "", 0, 0); err != nil {
		t.Fatal(err)
	}
	got, err := s.UpdateGesture(50, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got.X != 300 {
		t.Errorf("x = %d, want 300 (100 native px for 50 viewport px)", got.X)
	}
}

func TestSession_GestureRequiresPrimaryAndRegion(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.BeginGesture(region.KindMove, "", 0, 0); !errors.Is(err, ErrNoPrimary) {
		t.Errorf("no primary: err = %v, want ErrNoPrimary", err)
	}

	s.AddAsset(primaryAsset())
	s.AddAsset(secondaryAsset())
	if err := s.SetPrimary("prim"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(ModeMerge); err != nil {
		t.Fatal(err)
	}
	// Merge mode without a secondary has no region to drag.
	if err := s.BeginGesture(region.KindMove, "", 0, 0); !errors.Is(err, ErrNoSecondary) {
		t.Errorf("no secondary: err = %v, want ErrNoSecondary", err)
	}
}

func TestSession_GestureRejectsBadHandle(t *testing.T) {
	s := setupCropSession(t)
	if err := s.BeginGesture(region.KindResize, "center", 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSession_UpdateWithoutGesture(t *testing.T) {
	s := setupCropSession(t)
	if _, err := s.UpdateGesture(10, 10); !errors.Is(err, ErrNoGesture) {
		t.Errorf("err = %v, want ErrNoGesture", err)
	}
}

func TestSession_GestureMovesOverlayPlacement(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddAsset(primaryAsset())
	s.AddAsset(secondaryAsset())
	if err := s.SetPrimary("prim"); err != nil {
		t.Fatal(err)
	}
	s.SetViewport(1920, 1080)
	if err := s.SetMode(ModeMerge); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectSecondary("sec"); err != nil {
		t.Fatal(err)
	}

	if err := s.BeginGesture(region.KindMove, "", 0, 0); err != nil {
		t.Fatal(err)
	}
	got, err := s.UpdateGesture(200, 100)
	if err != nil {
		t.Fatal(err)
	}
	s.EndGesture()

	if got.X != 200 || got.Y != 100 {
		t.Errorf("placement moved to (%d,%d), want (200,100)", got.X, got.Y)
	}
	st := s.Snapshot()
	if st.Placement.Region != got {
		t.Errorf("snapshot placement = %+v, want %+v", st.Placement.Region, got)
	}
}

func TestSession_ClickCreatesDefaultRegion(t *testing.T) {
	s, _ := newTestSession(t)
	s.AddAsset(primaryAsset())
	if err := s.SetPrimary("prim"); err != nil {
		t.Fatal(err)
	}
	s.SetViewport(800, 400)

	// A region already exists (seeded on SetPrimary), so clicks are ignored.
	if _, created := s.ClickAt(400, 200); created {
		t.Error("click created a region while one already exists")
	}

	// Drop the seeded region directly to exercise the click-to-create path.
	s.mu.Lock()
	s.crop = nil
	s.mu.Unlock()

	// Click on the pillarbox bar: outside the rendered frame.
	if _, created := s.ClickAt(10, 200); created {
		t.Error("click on the letterbox bar must not create a region")
	}

	got, created := s.ClickAt(400, 200)
	if !created {
		t.Fatal("click inside the frame should create a region")
	}
	want := geometry.Rect{X: 480, Y: 270, Width: 960, Height: 540}
	if got != want {
		t.Errorf("created region = %+v, want centered default %+v", got, want)
	}
}

func TestSession_DraftCommitClampsValues(t *testing.T) {
	s := setupCropSession(t)

	for field, v := range map[string]string{"x": "1900", "y": "-50", "width": "500", "height": "10000"} {
		if err := s.SetRegionDraft(field, v); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.CommitRegionDrafts()
	if err != nil {
		t.Fatalf("CommitRegionDrafts: %v", err)
	}

	// Width 500 at x=1900 overflows: size resolves first (stays 500), then x
	// slides back to 1420. Height clamps to the full 1080 and y to 0.
	want := geometry.Rect{X: 1420, Y: 0, Width: 500, Height: 1080}
	if got != want {
		t.Errorf("committed region = %+v, want %+v", got, want)
	}
	if len(s.RegionDrafts()) != 0 {
		t.Error("drafts not cleared after commit")
	}
}

func TestSession_DraftMalformedCommitLeavesStateUntouched(t *testing.T) {
	s := setupCropSession(t)
	before := *s.Snapshot().CropRegion

	if err := s.SetRegionDraft("x", "100"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegionDraft("width", "abc"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.CommitRegionDrafts(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	if got := *s.Snapshot().CropRegion; got != before {
		t.Errorf("region changed by failed commit: %+v", got)
	}
	drafts := s.RegionDrafts()
	if drafts["x"] != "100" || drafts["width"] != "abc" {
		t.Errorf("drafts = %v, want preserved for correction", drafts)
	}
}

func TestSession_DraftUnknownFieldAndDiscard(t *testing.T) {
	s := setupCropSession(t)

	if err := s.SetRegionDraft("angle", "45"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown field err = %v, want ErrInvalidInput", err)
	}

	if err := s.SetRegionDraft("x", "123"); err != nil {
		t.Fatal(err)
	}
	s.DiscardRegionDrafts()
	if len(s.RegionDrafts()) != 0 {
		t.Error("drafts survived DiscardRegionDrafts")
	}
}

func TestSession_DraftFractionalValuesRound(t *testing.T) {
	s := setupCropSession(t)

	for field, v := range map[string]string{"x": "100.6", "y": "50.4", "width": "400.5", "height": "300"} {
		if err := s.SetRegionDraft(field, v); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.CommitRegionDrafts()
	if err != nil {
		t.Fatal(err)
	}
	want := geometry.Rect{X: 101, Y: 50, Width: 401, Height: 300}
	if got != want {
		t.Errorf("committed region = %+v, want rounded %+v", got, want)
	}
}
