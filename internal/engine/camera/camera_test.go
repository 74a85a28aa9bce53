package camera

import (
	gomath "math"
	"testing"

	"github.com/kentril0/watersurface/pkg/math"
)

func almostEqual(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func TestForwardAtRest(t *testing.T) {
	c := New()
	c.Yaw = 0
	c.Pitch = 0

	f := c.Forward()
	if !almostEqual(f.X, 0, 1e-6) || !almostEqual(f.Y, 0, 1e-6) || !almostEqual(f.Z, -1, 1e-6) {
		t.Fatalf("forward at rest = %+v, want (0, 0, -1)", f)
	}
}

func TestForwardIsUnitLength(t *testing.T) {
	c := New()
	for _, pose := range []struct{ yaw, pitch float32 }{
		{0, 0}, {1.2, 0.4}, {-2.5, -1.1}, {3.1, 1.5},
	} {
		c.Yaw, c.Pitch = pose.yaw, pose.pitch
		if l := c.Forward().Length(); !almostEqual(l, 1, 1e-5) {
			t.Errorf("yaw=%v pitch=%v: |forward| = %v, want 1", pose.yaw, pose.pitch, l)
		}
	}
}

func TestRightIsPerpendicularToForward(t *testing.T) {
	c := New()
	c.Yaw = 0.7
	c.Pitch = -0.3

	if d := c.Forward().Dot(c.Right()); !almostEqual(d, 0, 1e-5) {
		t.Fatalf("forward . right = %v, want 0", d)
	}
}

func TestHandleMouseClampsPitch(t *testing.T) {
	c := New()
	c.HandleMouse(0, -1e6)
	if c.Pitch > maxPitch {
		t.Fatalf("pitch %v exceeds clamp %v", c.Pitch, maxPitch)
	}
	c.HandleMouse(0, 1e6)
	if c.Pitch < -maxPitch {
		t.Fatalf("pitch %v below clamp %v", c.Pitch, -maxPitch)
	}
}

func TestMoveForwardFollowsViewDirection(t *testing.T) {
	c := New()
	c.Pos = math.Vec3{}
	c.Yaw = 0
	c.Pitch = 0
	c.MoveSpeed = 10

	c.Move(1, 0, 0, 0.5)

	if !almostEqual(c.Pos.Z, -5, 1e-5) || !almostEqual(c.Pos.X, 0, 1e-5) {
		t.Fatalf("pos after forward move = %+v, want (0, 0, -5)", c.Pos)
	}
}

func TestMoveUpIsWorldVertical(t *testing.T) {
	c := New()
	c.Pos = math.Vec3{}
	c.Pitch = -1.0 // looking down must not affect vertical travel
	c.MoveSpeed = 10

	c.Move(0, 0, 1, 1)

	if !almostEqual(c.Pos.Y, 10, 1e-5) || !almostEqual(c.Pos.X, 0, 1e-5) || !almostEqual(c.Pos.Z, 0, 1e-5) {
		t.Fatalf("pos after up move = %+v, want (0, 10, 0)", c.Pos)
	}
}

func TestSetAspectIgnoresDegenerateHeight(t *testing.T) {
	c := New()
	before := c.Aspect
	c.SetAspect(800, 0)
	if c.Aspect != before {
		t.Fatalf("aspect changed on zero height")
	}
	c.SetAspect(800, 400)
	if !almostEqual(c.Aspect, 2, 1e-6) {
		t.Fatalf("aspect = %v, want 2", c.Aspect)
	}
}

func TestViewMatrixPlacesEyeAtOrigin(t *testing.T) {
	c := New()
	c.Pos = math.Vec3{X: 3, Y: -2, Z: 7}
	c.Yaw = 0.9
	c.Pitch = 0.2

	view := c.ViewMatrix()
	eye := view.TransformPoint(c.Pos)
	if !almostEqual(eye.X, 0, 1e-4) || !almostEqual(eye.Y, 0, 1e-4) || !almostEqual(eye.Z, 0, 1e-4) {
		t.Fatalf("eye in view space = %+v, want origin", eye)
	}
}
