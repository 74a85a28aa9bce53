package input

// Focus tracks which subsystem currently owns the mouse and keyboard.
// Escape flips between overlay interaction and camera flight; while the
// camera holds focus the cursor is captured in relative mode.
type Focus int

const (
	// GuiControls routes input to the overlay; the cursor is visible.
	GuiControls Focus = iota
	// CameraControls captures the mouse and routes motion to the camera.
	CameraControls
)

// Toggle returns the opposite focus state.
func (f Focus) Toggle() Focus {
	if f == GuiControls {
		return CameraControls
	}
	return GuiControls
}

// Captured reports whether the mouse should be in relative mode.
func (f Focus) Captured() bool {
	return f == CameraControls
}
