// Package camera provides the free-flight camera used to inspect the
// water surface.
package camera

import (
	gomath "math"

	"github.com/kentril0/watersurface/pkg/math"
)

const maxPitch = 1.55 // just short of straight up/down, radians

// FreeCamera flies freely through the scene; yaw and pitch come from
// relative mouse motion, position from WASD-style movement.
type FreeCamera struct {
	Pos   math.Vec3
	Yaw   float32 // Horizontal angle (radians), 0 looks down -Z
	Pitch float32 // Vertical angle (radians), clamped short of the poles

	// Projection
	FOV    float32 // Vertical field of view (radians)
	Near   float32
	Far    float32
	Aspect float32

	// Sensitivity
	MoveSpeed   float32 // World units per second
	Sensitivity float32 // Radians per pixel of mouse motion
}

// New creates a free camera hovering above the surface looking along -Z.
func New() *FreeCamera {
	return &FreeCamera{
		Pos:         math.Vec3{X: 0, Y: 60, Z: 200},
		Yaw:         0,
		Pitch:       -0.25,
		FOV:         float32(gomath.Pi / 3),
		Near:        0.1,
		Far:         5000,
		Aspect:      16.0 / 9.0,
		MoveSpeed:   80,
		Sensitivity: 0.0025,
	}
}

// SetAspect updates the projection aspect ratio, typically on resize.
func (c *FreeCamera) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Forward returns the unit view direction.
func (c *FreeCamera) Forward() math.Vec3 {
	cosPitch := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))) * cosPitch,
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -float32(gomath.Cos(float64(c.Yaw))) * cosPitch,
	}
}

// Right returns the unit right direction on the horizontal plane.
func (c *FreeCamera) Right() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Cos(float64(c.Yaw))),
		Y: 0,
		Z: float32(gomath.Sin(float64(c.Yaw))),
	}
}

// HandleMouse turns the camera by a relative mouse delta in pixels.
func (c *FreeCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.Sensitivity
	c.Pitch -= deltaY * c.Sensitivity

	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Move translates the camera. forward, right and up are signed axis
// inputs in [-1, 1]; dt is the frame time in seconds.
func (c *FreeCamera) Move(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt

	f := c.Forward()
	r := c.Right()

	c.Pos = c.Pos.Add(f.Scale(forward * step))
	c.Pos = c.Pos.Add(r.Scale(right * step))
	c.Pos.Y += up * step
}

// ViewMatrix returns the view matrix for the current pose.
func (c *FreeCamera) ViewMatrix() math.Mat4 {
	target := c.Pos.Add(c.Forward())
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Pos, target, up)
}

// ProjMatrix returns the perspective projection matrix.
func (c *FreeCamera) ProjMatrix() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
