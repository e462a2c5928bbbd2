package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs/component"
)

const stickDeadzone = 0.2

// EbitenSource reads keyboard, mouse and the first standard gamepad.
type EbitenSource struct {
	Sensitivity float64

	lastX, lastY int
	hasLast      bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{Sensitivity: common.MouseSensitivity}
}

// ResetMouse drops the stored cursor position so the next frame reports no
// look delta. Call it after the cursor is recaptured.
func (s *EbitenSource) ResetMouse() {
	s.hasLast = false
}

func (s *EbitenSource) Poll(_ uint64, _ float64) (component.Input, error) {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveZ -= 1
	}
	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	in.CrouchHeld = ebiten.IsKeyPressed(ebiten.KeyC)
	in.FlashlightHeld = ebiten.IsKeyPressed(ebiten.KeyF)

	x, y := ebiten.CursorPosition()
	if s.hasLast {
		// Screen Y grows downward; look Y is positive when the mouse moves up.
		in.LookX = float64(x-s.lastX) * s.Sensitivity
		in.LookY = float64(s.lastY-y) * s.Sensitivity
	}
	s.lastX, s.lastY, s.hasLast = x, y, true

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveX = lx
			in.MoveZ = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.LookX += rx
			in.LookY -= ry
		}
		in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		in.CrouchHeld = in.CrouchHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.FlashlightHeld = in.FlashlightHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop)
	}

	in.MoveX = common.Clamp(in.MoveX, -1, 1)
	in.MoveZ = common.Clamp(in.MoveZ, -1, 1)
	return in, nil
}
