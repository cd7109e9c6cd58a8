package convex

import (
	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/diag"
	"github.com/akmonengine/convex/hull"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

const DEFAULT_WORKERS = 1

// Detector runs the narrow phase over a set of bodies
type Detector struct {
	// List of all bodies tested by Step
	Bodies  []*actor.Body
	Workers int
	Hull    hull.Config

	Logger diag.Logger
	Drawer diag.Drawer
	Events Events
}

// NewDetector creates an empty detector logging to stdout
func NewDetector(cfg Config) *Detector {
	logger := diag.NewDefaultLogger(cfg.LogPrefix, cfg.Debug)
	logger.Debugf("detector: %d workers", max(DEFAULT_WORKERS, cfg.Workers))

	return &Detector{
		Workers: cfg.Workers,
		Hull:    cfg.Hull,
		Logger:  logger,
		Drawer:  diag.NopDrawer{},
		Events:  NewEvents(),
	}
}

func (d *Detector) logger() diag.Logger {
	if d.Logger == nil {
		d.Logger = diag.NewNopLogger()
	}
	return d.Logger
}

func (d *Detector) drawer() diag.Drawer {
	if d.Drawer == nil {
		d.Drawer = diag.NopDrawer{}
	}
	return d.Drawer
}

// NewConvex builds a hull shape with the detector's hull configuration
func (d *Detector) NewConvex(points []mgl64.Vec3) (*actor.Convex, error) {
	shape, err := actor.NewConvex(points,
		hull.WithConfig(d.Hull),
		hull.WithLogger(d.logger()),
		hull.WithDrawer(d.drawer()),
	)
	if err != nil {
		d.logger().Warnf("detector: %v", err)
		return nil, err
	}

	return shape, nil
}

// AddBody adds a body to the detector
func (d *Detector) AddBody(body *actor.Body) {
	d.Bodies = append(d.Bodies, body)
}

// RemoveBody removes a body from the detector
func (d *Detector) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range d.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		d.Bodies = append(d.Bodies[:k], d.Bodies[k+1:]...)
	}

	d.Events.forget(body)
}

// Detect refreshes the bounds of the bodies in pairs, then runs the narrow phase
// over them
func (d *Detector) Detect(pairs []Pair) []Contact {
	bodies := lo.Uniq(lo.FlatMap(pairs, func(pair Pair, _ int) []*actor.Body {
		return []*actor.Body{pair.BodyA, pair.BodyB}
	}))
	d.refresh(bodies)

	return d.detect(pairs)
}

func (d *Detector) refresh(bodies []*actor.Body) {
	parallel(bodies, max(DEFAULT_WORKERS, d.Workers), func(body *actor.Body) {
		body.UpdateAABB()
	})
}

func (d *Detector) detect(pairs []Pair) []Contact {
	contacts := NarrowPhase(pairs, d.Workers)
	d.logger().Debugf("detector: %d pairs, %d contacts", len(pairs), len(contacts))

	for _, c := range contacts {
		from := c.BodyA.Center()
		d.drawer().DrawLine(from, from.Add(c.Normal.Mul(c.Penetration)), diag.ColorOrange)
	}

	return contacts
}

// Step refreshes the bounds of every body, detects the contacts between all pairs,
// then dispatches the contact events. Contacts involving a trigger are reported
// through events only.
func (d *Detector) Step() []Contact {
	if d.Events.listeners == nil {
		d.Events = NewEvents()
	}

	d.refresh(d.Bodies)
	contacts := d.detect(AllPairs(d.Bodies))
	contacts = d.Events.recordContacts(contacts)
	d.Events.flush()

	return contacts
}
