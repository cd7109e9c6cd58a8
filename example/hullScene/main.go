package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/akmonengine/convex"
	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/diag"
	"github.com/akmonengine/convex/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// ConsoleDrawer prints the debug geometry of the contacts
type ConsoleDrawer struct{}

func (d *ConsoleDrawer) DrawLine(from, to mgl64.Vec3, color diag.Color) {
	fmt.Printf("   line %v -> %v\n", from, to)
}

func (d *ConsoleDrawer) DrawPoint(position mgl64.Vec3, color diag.Color) {
	fmt.Printf("   point %v\n", position)
}

func (d *ConsoleDrawer) DrawPolygon(vertices []mgl64.Vec3, color diag.Color) {
	fmt.Printf("   polygon of %d vertices\n", len(vertices))
}

// rockPoints scatters points on a squashed sphere, giving an irregular hull
func rockPoints(count int, seed int64) []mgl64.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	points := make([]mgl64.Vec3, count)
	for i := range points {
		p := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}.Normalize()
		points[i] = mgl64.Vec3{p.X(), p.Y() * 0.6, p.Z()}.Mul(0.8 + 0.2*rng.Float64())
	}
	return points
}

func boxPoints(halfExtents mgl64.Vec3) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, 8)
	for i := range 8 {
		p := halfExtents
		if i&1 != 0 {
			p[0] = -p[0]
		}
		if i&2 != 0 {
			p[1] = -p[1]
		}
		if i&4 != 0 {
			p[2] = -p[2]
		}
		points = append(points, p)
	}
	return points
}

// SetupScene creates a ground slab, a falling rock, a ball and a sensor
func SetupScene(detector *convex.Detector) (*actor.Body, error) {
	groundShape, err := detector.NewConvex(boxPoints(mgl64.Vec3{5, 0.5, 5}))
	if err != nil {
		return nil, err
	}
	ground := actor.NewBody(geom.Translation(mgl64.Vec3{0, -0.5, 0}), groundShape, actor.BodyTypeStatic)
	detector.AddBody(ground)

	rockShape, err := detector.NewConvex(rockPoints(200, 42))
	if err != nil {
		return nil, err
	}
	fmt.Printf("Rock hull: %d faces, %d vertices, volume %.3f\n",
		rockShape.Collider.FaceCount(), len(rockShape.Collider.Vertices()), rockShape.Collider.Volume())

	rockTransform := geom.Transform{
		Position: mgl64.Vec3{0, 3, 0},
		Rotation: mgl64.QuatRotate(math.Pi/5, mgl64.Vec3{1, 0, 1}.Normalize()),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
	rock := actor.NewBody(rockTransform, rockShape, actor.BodyTypeDynamic)
	detector.AddBody(rock)

	ball := actor.NewBody(geom.Translation(mgl64.Vec3{2, 0.45, 0}), &actor.Sphere{Radius: 0.5}, actor.BodyTypeDynamic)
	detector.AddBody(ball)

	sensor := actor.NewBody(geom.Translation(mgl64.Vec3{0, 1.5, 0}), &actor.Sphere{Radius: 0.3}, actor.BodyTypeStatic)
	sensor.IsTrigger = true
	detector.AddBody(sensor)

	return rock, nil
}

func main() {
	configPath := flag.String("config", "", "YAML configuration of the detector")
	steps := flag.Int("steps", 40, "number of steps")
	flag.Parse()

	cfg := convex.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = convex.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	detector := convex.NewDetector(cfg)
	detector.Drawer = &ConsoleDrawer{}

	for _, eventType := range []convex.EventType{convex.COLLISION_ENTER, convex.COLLISION_EXIT, convex.TRIGGER_ENTER, convex.TRIGGER_EXIT} {
		detector.Events.Subscribe(eventType, func(event convex.Event) {
			fmt.Printf("   event %T\n", event)
		})
	}

	rock, err := SetupScene(detector)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the rock sinks through the sensor into the ground
	for step := 0; step < *steps; step++ {
		fmt.Printf("--- step %d, rock at %v ---\n", step+1, rock.Transform.Position)

		for _, c := range detector.Step() {
			fmt.Printf("   contact %s: normal %v, penetration %.4f\n", c.Feature, c.Normal, c.Penetration)
		}

		rock.Transform.Position = rock.Transform.Position.Sub(mgl64.Vec3{0, 0.1, 0})
	}
}
