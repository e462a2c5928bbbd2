package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// RenderSystem draws a top-down debug view of the XZ plane and a text HUD.
type RenderSystem struct {
	OriginX, OriginY float64
	Scale            float64

	face text.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{
		OriginX: 32,
		OriginY: 32,
		Scale:   common.PixelsPerMeter,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) project(p mgl64.Vec3) (float32, float32) {
	return float32(r.OriginX + p.X()*r.Scale), float32(r.OriginY + p.Z()*r.Scale)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Black)

	for _, bb := range w.PhysicsWorld().Solids() {
		x, y := r.project(mgl64.Vec3{bb.L, 0, bb.B})
		wd, ht := float32((bb.R-bb.L)*r.Scale), float32((bb.T-bb.B)*r.Scale)
		vector.FillRect(screen, x, y, wd, ht, colornames.Darkslategray, false)
		vector.StrokeRect(screen, x, y, wd, ht, 1, colornames.Slategray, false)
	}

	ecs.ForEach(w, component.LightComponent.Kind(), func(e ecs.Entity, light *component.Light) {
		pos, rot, ok := ecs.WorldPose(w, e)
		if !ok {
			return
		}
		r.drawLight(screen, pos, rot, light)
	})

	ecs.ForEach2(w, component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.CharacterBody, _ *component.Transform) {
		pos, rot, ok := ecs.WorldPose(w, e)
		if !ok {
			return
		}
		cx, cy := r.project(pos)
		fill := colornames.Cornflowerblue
		if body.Height < 1 {
			fill = colornames.Steelblue
		}
		vector.FillCircle(screen, cx, cy, float32(body.Radius*r.Scale), fill, true)

		fx, fy := r.project(pos.Add(rot.Rotate(common.Forward).Mul(body.Radius * 2)))
		vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)
	})

	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawLight(screen *ebiten.Image, pos mgl64.Vec3, rot mgl64.Quat, light *component.Light) {
	cx, cy := r.project(pos)
	if !light.Enabled {
		vector.FillCircle(screen, cx, cy, 3, colornames.Dimgray, true)
		return
	}
	c := light.Color
	c.A = 160
	half := mgl64.DegToRad(light.Angle / 2)
	heading := rot.Rotate(common.Forward)
	for _, a := range []float64{-half, half} {
		dir := mgl64.QuatRotate(a, common.Up).Rotate(heading)
		ex, ey := r.project(pos.Add(dir.Mul(light.Range)))
		vector.StrokeLine(screen, cx, cy, ex, ey, 1, c, true)
	}
	vector.FillCircle(screen, cx, cy, 3, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, true)
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok {
		return
	}
	body, _ := ecs.Get(w, player, component.CharacterBodyComponent.Kind())
	pos, rot, _ := ecs.WorldPose(w, player)

	lightState := "none"
	if light, ok := ecs.Get(w, ecs.Entity(loco.Flashlight), component.LightComponent.Kind()); ok {
		lightState = "off"
		if light.Enabled {
			lightState = "on"
		}
	}
	height, grounded := 0.0, false
	if body != nil {
		height, grounded = body.Height, body.Grounded
	}

	lines := []string{
		fmt.Sprintf("variant %s  frame %d", loco.Variant, w.Frame()),
		fmt.Sprintf("pos %.2f %.2f %.2f  yaw %.1f  pitch %.1f", pos.X(), pos.Y(), pos.Z(), math.Mod(common.YawDegrees(rot)+360, 360), loco.RotationX),
		fmt.Sprintf("height %.2f  crouching %t  grounded %t  vy %.3f", height, loco.IsCrouching, grounded, loco.VerticalVelocity),
		fmt.Sprintf("flashlight %s", lightState),
	}
	if loco.Faulted {
		lines = append(lines, "controller faulted")
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(common.BaseWidth-420), 16)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colornames.Lightgray)
	for _, line := range lines {
		text.Draw(screen, line, r.face, op)
		op.GeoM.Translate(0, 16)
	}
}
