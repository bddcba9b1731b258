package tileatlas

// FinalizeOption configures BuildQueue.Finalize.
//
// Example:
//
//	atlas, ok := queue.Finalize(
//	    tileatlas.WithLevelLimit(4),
//	    tileatlas.WithNextSize(32),
//	)
type FinalizeOption func(*finalizeOptions)

// finalizeOptions holds optional configuration for Finalize.
type finalizeOptions struct {
	downsampler Downsampler
	levelLimit  uint32
	image       ImageSettings
	nextSize    uint32
}

// defaultFinalizeOptions returns the default finalize options.
func defaultFinalizeOptions() finalizeOptions {
	return finalizeOptions{
		downsampler: BilinearSRGB{},
		image:       DefaultImageSettings(),
	}
}

// WithDownsampler sets the algorithm used to generate mip levels.
// The default is BilinearSRGB.
func WithDownsampler(d Downsampler) FinalizeOption {
	return func(o *finalizeOptions) {
		if d != nil {
			o.downsampler = d
		}
	}
}

// WithLevelLimit discards mip levels at and above limit before packing.
// 0 keeps every level.
func WithLevelLimit(limit uint32) FinalizeOption {
	return func(o *finalizeOptions) {
		o.levelLimit = limit
	}
}

// WithImageSettings sets the texture and sampler description of the image.
func WithImageSettings(s ImageSettings) FinalizeOption {
	return func(o *finalizeOptions) {
		o.image = s
	}
}

// WithNextSize sizes the builder the queue starts over with.
// 0 (the default) sizes it from the next loaded sheet.
func WithNextSize(size uint32) FinalizeOption {
	return func(o *finalizeOptions) {
		o.nextSize = size
	}
}
