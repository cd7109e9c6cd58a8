package sat

import "github.com/akmonengine/convex/diag"

type options struct {
	drawer diag.Drawer
}

type Option func(*options)

// WithDrawer receives the axis every detection was decided on
func WithDrawer(drawer diag.Drawer) Option {
	return func(o *options) {
		if drawer != nil {
			o.drawer = drawer
		}
	}
}

func newOptions(opts []Option) options {
	o := options{drawer: diag.NopDrawer{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
