package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	cam := New(0, 100, 1000, 500, 650, 400)

	if cam.X != 325 || cam.Y != 200 {
		t.Errorf("expected camera at (325, 200), got (%f, %f)", cam.X, cam.Y)
	}
	// min(1000/650, 500/400) = 1.25
	if !near(cam.Zoom, 1.25) {
		t.Errorf("expected fit zoom 1.25, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(0, 100, 1000, 500, 650, 400)

	// Camera center maps to viewport center
	sx, sy := cam.WorldToScreen(325, 200)
	if !near(sx, 500) || !near(sy, 350) {
		t.Errorf("expected viewport center (500, 350), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(20, 80, 1280, 640, 960, 480)
	cam.SetZoom(2)
	cam.Pan(-100, 40)

	testCases := []struct{ sx, sy float32 }{
		{660, 400},
		{20, 80},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(0, 0, 800, 600, 400, 300)
	cam.Pan(-1e6, 1e6)
	if cam.X != 0 || cam.Y != 300 {
		t.Errorf("expected clamp to (0, 300), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(0, 0, 800, 600, 400, 300)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected max zoom %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected min zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(0, 0, 800, 600, 800, 600)
	sx, sy := float32(300), float32(200)
	wx, wy := cam.ScreenToWorld(sx, sy)

	cam.ZoomAt(2, sx, sy)

	gx, gy := cam.WorldToScreen(wx, wy)
	if !near(gx, sx) || !near(gy, sy) {
		t.Errorf("world point moved on screen: (%f,%f) -> (%f,%f)", sx, sy, gx, gy)
	}
}

func TestContains(t *testing.T) {
	cam := New(10, 20, 100, 50, 100, 50)
	if !cam.Contains(10, 20) || !cam.Contains(109, 69) {
		t.Error("corners inside the viewport should be contained")
	}
	if cam.Contains(9, 30) || cam.Contains(50, 70) {
		t.Error("points outside the viewport should not be contained")
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(0, 0, 800, 600, 400, 300)
	cam.SetZoom(cam.MinZoom)
	cam.Resize(0, 0, 1600, 1200)
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below min %f after resize", cam.Zoom, cam.MinZoom)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(0, 0, 800, 600, 800, 600)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) || !near(maxX, 800) || !near(maxY, 600) {
		t.Errorf("bounds = (%f,%f,%f,%f), want (0,0,800,600)", minX, minY, maxX, maxY)
	}
}
