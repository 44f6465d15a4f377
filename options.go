package sketch

import "math/rand/v2"

// Option configures a Sketch during creation.
//
// Example:
//
//	// Reproducible A4 landscape sketch
//	s := sketch.New(sketch.WithSeed(42), sketch.WithPageSize(sketch.PageA4), sketch.WithLandscape(true))
//
//	// Pipeline injection
//	s := sketch.New(sketch.WithPipeline(pipeline.New()))
type Option func(*options)

// options holds optional configuration for Sketch creation.
type options struct {
	seed            uint64
	seedSet         bool
	noiseSeed       uint64
	noiseSeedSet    bool
	page            PageSize
	landscape       bool
	centered        bool
	detail          float64
	defaultPenWidth float64
	pipeline        Pipeline
	font            *Font
}

// defaultOptions returns the default sketch options.
func defaultOptions() options {
	return options{
		page:            PageA3,
		centered:        true,
		defaultPenWidth: DefaultPenWidth,
	}
}

// resolveSeeds picks a random seed when none was given. The noise seed
// follows the random seed unless set explicitly.
func (o *options) resolveSeeds() {
	if !o.seedSet {
		o.seed = rand.Uint64()
	}
	if !o.noiseSeedSet {
		o.noiseSeed = o.seed
	}
}

// WithSeed seeds both the random stream and, unless WithNoiseSeed is also
// given, the noise field.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithNoiseSeed seeds the noise field independently of the random stream.
func WithNoiseSeed(seed uint64) Option {
	return func(o *options) {
		o.noiseSeed = seed
		o.noiseSeedSet = true
	}
}

// WithPageSize sets the page size. The default is A3 portrait.
func WithPageSize(p PageSize) Option {
	return func(o *options) {
		o.page = p
	}
}

// WithLandscape selects landscape orientation.
func WithLandscape(landscape bool) Option {
	return func(o *options) {
		o.landscape = landscape
	}
}

// WithCentered controls whether the drawing bounds are centered on the
// page when saving. The default is true.
func WithCentered(centered bool) Option {
	return func(o *options) {
		o.centered = centered
	}
}

// WithDetail sets the tessellation chord tolerance in pixels. Without it,
// the tolerance follows the page diagonal.
func WithDetail(px float64) Option {
	return func(o *options) {
		o.detail = px
	}
}

// WithDefaultPenWidth sets the pen width, in pixels, of layers without an
// explicit PenWidth.
func WithDefaultPenWidth(px float64) Option {
	return func(o *options) {
		o.defaultPenWidth = px
	}
}

// WithPipeline sets the geometry pipeline used by Vpype.
func WithPipeline(p Pipeline) Option {
	return func(o *options) {
		o.pipeline = p
	}
}

// WithFont sets the font used by Text. The default is Go Regular.
func WithFont(f *Font) Option {
	return func(o *options) {
		o.font = f
	}
}
