package stagecraft

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProceduralBotLoader is a Loader returning ProceduralBot. It stands in for a
// model file when none is configured.
var ProceduralBotLoader = LoaderFunc(func(ctx context.Context) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ProceduralBot(), nil
})

// ProceduralBot builds an articulated box figure about 1.8 units tall,
// standing on the origin, with "idle", "walk" and "run" clips.
func ProceduralBot() *Asset {
	skin := NewMaterial(ColorHex(0x8899aa))
	joint := NewMaterial(ColorHex(0x445566))

	root := NewGroup("bot")
	hips := NewGroup("hips")
	hips.SetPosition(0, 0.95, 0)
	root.AddChild(hips)

	torso := NewMesh("torso", NewBoxGeometry(0.5, 0.6, 0.25), skin)
	torso.SetPosition(0, 0.35, 0)
	hips.AddChild(torso)

	head := NewMesh("head", NewSphereGeometry(SphereParams{Radius: 0.15, WidthSegments: 10, HeightSegments: 8}), skin)
	head.SetPosition(0, 0.48, 0)
	torso.AddChild(head)

	limb := func(name string, parent *Node, x, y, length float64, mat *Material) *Node {
		pivot := NewGroup(name)
		pivot.SetPosition(x, y, 0)
		seg := NewMesh(name+"_mesh", NewBoxGeometry(0.14, length, 0.14), mat)
		seg.SetPosition(0, -length/2, 0)
		pivot.AddChild(seg)
		parent.AddChild(pivot)
		return pivot
	}
	limb("arm_l", torso, -0.33, 0.25, 0.6, joint)
	limb("arm_r", torso, 0.33, 0.25, 0.6, joint)
	limb("leg_l", hips, -0.14, 0, 0.9, joint)
	limb("leg_r", hips, 0.14, 0, 0.9, joint)

	return &Asset{
		Root: root,
		Clips: []*AnimationClip{
			botIdleClip(),
			botGaitClip("walk", 1.0, 0.5, 0.4, 0.02),
			botGaitClip("run", 0.6, 0.9, 0.8, 0.06),
		},
	}
}

// botGaitClip swings legs and arms in opposition. period is one full stride.
func botGaitClip(name string, period, legSwing, armSwing, bob float64) *AnimationClip {
	const keys = 9
	times := make([]float64, keys)
	legL := make([]mgl64.Quat, keys)
	legR := make([]mgl64.Quat, keys)
	armL := make([]mgl64.Quat, keys)
	armR := make([]mgl64.Quat, keys)
	hips := make([]mgl64.Vec3, keys)
	xAxis := mgl64.Vec3{1, 0, 0}
	for i := 0; i < keys; i++ {
		phase := float64(i) / float64(keys-1)
		times[i] = phase * period
		s := math.Sin(phase * 2 * math.Pi)
		legL[i] = mgl64.QuatRotate(legSwing*s, xAxis)
		legR[i] = mgl64.QuatRotate(-legSwing*s, xAxis)
		armL[i] = mgl64.QuatRotate(-armSwing*s, xAxis)
		armR[i] = mgl64.QuatRotate(armSwing*s, xAxis)
		hips[i] = mgl64.Vec3{0, 0.95 + bob*math.Abs(math.Cos(phase*2*math.Pi)), 0}
	}
	return NewAnimationClip(name, period,
		NewRotationTrack("leg_l", times, legL),
		NewRotationTrack("leg_r", times, legR),
		NewRotationTrack("arm_l", times, armL),
		NewRotationTrack("arm_r", times, armR),
		NewVectorTrack("hips", PathTranslation, times, hips),
	)
}

func botIdleClip() *AnimationClip {
	times := []float64{0, 1, 2}
	return NewAnimationClip("idle", 2,
		NewVectorTrack("hips", PathTranslation, times, []mgl64.Vec3{{0, 0.95, 0}, {0, 0.93, 0}, {0, 0.95, 0}}),
		NewRotationTrack("arm_l", times, []mgl64.Quat{
			mgl64.QuatRotate(0.05, mgl64.Vec3{0, 0, 1}),
			mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1}),
			mgl64.QuatRotate(0.05, mgl64.Vec3{0, 0, 1}),
		}),
		NewRotationTrack("arm_r", times, []mgl64.Quat{
			mgl64.QuatRotate(-0.05, mgl64.Vec3{0, 0, 1}),
			mgl64.QuatRotate(-0.1, mgl64.Vec3{0, 0, 1}),
			mgl64.QuatRotate(-0.05, mgl64.Vec3{0, 0, 1}),
		}),
	)
}
