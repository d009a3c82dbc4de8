package shader

// Option configures a Context.
//
// Example:
//
//	ctx := shader.NewContext(shader.WithComputeEntry(true), shader.WithWorkgroupSize(128))
type Option func(*options)

type options struct {
	entryName     string
	planeName     string
	computeEntry  bool
	workgroupSize int
}

func defaultOptions() options {
	return options{
		entryName:     "noise_value",
		planeName:     "noise_plane",
		computeEntry:  true,
		workgroupSize: 64,
	}
}

// WithEntryName sets the name of the generated (x, y, z) -> f32 function.
// The plane mapping function is named after it with "_plane" appended.
func WithEntryName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.entryName = name
			o.planeName = name + "_plane"
		}
	}
}

// WithComputeEntry controls whether a compute entry point reading
// positions from and writing values to storage buffers is generated.
// Enabled by default.
func WithComputeEntry(enabled bool) Option {
	return func(o *options) {
		o.computeEntry = enabled
	}
}

// WithWorkgroupSize sets the compute workgroup size. Values below 1 are
// ignored.
func WithWorkgroupSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workgroupSize = n
		}
	}
}
