package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/bossrush/component"
)

const stickDeadzone = 0.3

var keyBindings = map[component.Key][]ebiten.Key{
	component.KeyUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
	component.KeyDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
	component.KeyLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
	component.KeyRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
	component.KeyFire:    {ebiten.KeyZ, ebiten.KeySpace},
	component.KeySwitch:  {ebiten.KeyX},
	component.KeySlow:    {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	component.KeyPause:   {ebiten.KeyEscape, ebiten.KeyP},
	component.KeyConfirm: {ebiten.KeyEnter},
	component.KeyBack:    {ebiten.KeyBackspace, ebiten.KeyEscape},
	component.KeyRetry:   {ebiten.KeyR},
	component.KeyDebug:   {ebiten.KeyF1},
}

var padBindings = map[component.Key]ebiten.StandardGamepadButton{
	component.KeyUp:      ebiten.StandardGamepadButtonLeftTop,
	component.KeyDown:    ebiten.StandardGamepadButtonLeftBottom,
	component.KeyLeft:    ebiten.StandardGamepadButtonLeftLeft,
	component.KeyRight:   ebiten.StandardGamepadButtonLeftRight,
	component.KeyFire:    ebiten.StandardGamepadButtonRightBottom,
	component.KeySwitch:  ebiten.StandardGamepadButtonRightLeft,
	component.KeySlow:    ebiten.StandardGamepadButtonFrontBottomLeft,
	component.KeyPause:   ebiten.StandardGamepadButtonCenterRight,
	component.KeyConfirm: ebiten.StandardGamepadButtonRightBottom,
	component.KeyBack:    ebiten.StandardGamepadButtonRightRight,
	component.KeyRetry:   ebiten.StandardGamepadButtonRightTop,
}

// inputReader keeps last frame's stick directions for edge detection.
type inputReader struct {
	prevStick component.KeySet
}

// read polls keyboard and the first gamepad into one snapshot.
func (r *inputReader) read() component.Input {
	var in component.Input
	for k, keys := range keyBindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				in.Held.Set(k)
			}
			if inpututil.IsKeyJustPressed(key) {
				in.Pressed.Set(k)
			}
		}
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		r.prevStick = 0
		return in
	}
	gid := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return in
	}
	for k, btn := range padBindings {
		if ebiten.IsStandardGamepadButtonPressed(gid, btn) {
			in.Held.Set(k)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, btn) {
			in.Pressed.Set(k)
		}
	}

	var stick component.KeySet
	x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	if x < -stickDeadzone {
		stick.Set(component.KeyLeft)
	} else if x > stickDeadzone {
		stick.Set(component.KeyRight)
	}
	if y < -stickDeadzone {
		stick.Set(component.KeyUp)
	} else if y > stickDeadzone {
		stick.Set(component.KeyDown)
	}
	in.Held |= stick
	in.Pressed |= stick &^ r.prevStick
	r.prevStick = stick
	return in
}
