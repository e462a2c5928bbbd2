package system

import "github.com/hajimehoshi/ebiten/v2"

// CursorLocker hides and confines the pointer while the player has control.
type CursorLocker interface {
	Lock()
	Unlock()
}

// EbitenCursor captures the cursor through ebiten.
type EbitenCursor struct{}

func (EbitenCursor) Lock() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (EbitenCursor) Unlock() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

// RecordingCursor is used headless; it only remembers the last request.
type RecordingCursor struct {
	Locked bool
	Locks  int
}

func (c *RecordingCursor) Lock() {
	c.Locked = true
	c.Locks++
}

func (c *RecordingCursor) Unlock() {
	c.Locked = false
}
