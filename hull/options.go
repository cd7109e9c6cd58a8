package hull

import (
	"github.com/akmonengine/convex/diag"
	"github.com/go-gl/mathgl/mgl64"
)

type options struct {
	config    Config
	logger    diag.Logger
	drawer    diag.Drawer
	transform mgl64.Mat4
}

type Option func(*options)

func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = config
	}
}

func WithLogger(logger diag.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithDrawer(drawer diag.Drawer) Option {
	return func(o *options) {
		if drawer != nil {
			o.drawer = drawer
		}
	}
}

// WithTransform places the debug drawing of the build in world space
func WithTransform(transform mgl64.Mat4) Option {
	return func(o *options) {
		o.transform = transform
	}
}

func newOptions(opts []Option) options {
	o := options{
		config:    DefaultConfig(),
		logger:    diag.NewNopLogger(),
		drawer:    diag.NopDrawer{},
		transform: mgl64.Ident4(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config.Partition == "" {
		o.config.Partition = PartitionBest
	}

	return o
}
