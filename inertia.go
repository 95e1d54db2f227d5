package manipulate

// Velocities are the release velocities measured by the input layer when
// contact ends. Linear and Expansion are in DIPs per millisecond, Angular in
// degrees per millisecond.
type Velocities struct {
	Linear    Vec2
	Angular   float64
	Expansion Vec2
}

// DecelerationPolicy holds the constant deceleration magnitudes used for
// every inertial phase. Translation and Expansion are in DIPs per ms²,
// Rotation in degrees per ms².
type DecelerationPolicy struct {
	Translation float64 `toml:"translation" json:"translation"`
	Expansion   float64 `toml:"expansion" json:"expansion"`
	Rotation    float64 `toml:"rotation" json:"rotation"`
}

const (
	// dipsPerInch is the device-independent pixel density.
	dipsPerInch = 96.0
	// msSquaredPerSecondSquared converts a per-second² rate to per-ms².
	msSquaredPerSecondSquared = 1000.0 * 1000.0

	// TranslationDeceleration slows panning by 10 inches per second, every second.
	TranslationDeceleration = 10.0 * dipsPerInch / msSquaredPerSecondSquared

	// ExpansionDeceleration slows zooming by 0.1 inches per second, every second.
	ExpansionDeceleration = 0.1 * dipsPerInch / msSquaredPerSecondSquared

	// LegacyExpansionDeceleration is 0.1 * 96 / 1000.0 * 1000.0 as evaluated
	// left to right: 9.6 DIPs/ms², a million times ExpansionDeceleration.
	// Select it with Config.LegacyExpansion to reproduce hosts tuned
	// against that value.
	LegacyExpansionDeceleration = 0.1 * dipsPerInch / 1000.0 * 1000.0

	// RotationDeceleration slows rotation by 2 full turns per second, every second.
	RotationDeceleration = 2 * 360.0 / msSquaredPerSecondSquared
)

// DefaultDeceleration is the standard deceleration policy.
var DefaultDeceleration = DecelerationPolicy{
	Translation: TranslationDeceleration,
	Expansion:   ExpansionDeceleration,
	Rotation:    RotationDeceleration,
}

// LegacyDeceleration is DefaultDeceleration with LegacyExpansionDeceleration.
var LegacyDeceleration = DecelerationPolicy{
	Translation: TranslationDeceleration,
	Expansion:   LegacyExpansionDeceleration,
	Rotation:    RotationDeceleration,
}

// InertiaVector is the decelerating motion of a two-component axis.
type InertiaVector struct {
	InitialVelocity     Vec2
	DesiredDeceleration float64
}

// InertiaScalar is the decelerating motion of a one-component axis.
type InertiaScalar struct {
	InitialVelocity     float64
	DesiredDeceleration float64
}

// InertiaParameters is the deceleration model for one inertial phase.
// The input layer integrates it and feeds the resulting deltas back as
// inertial DeltaEvents.
type InertiaParameters struct {
	Translation InertiaVector
	Expansion   InertiaVector
	Rotation    InertiaScalar
}

// ComputeInertia pairs each release velocity with its policy deceleration.
// Velocities pass through unchanged.
func ComputeInertia(v Velocities, p DecelerationPolicy) InertiaParameters {
	return InertiaParameters{
		Translation: InertiaVector{InitialVelocity: v.Linear, DesiredDeceleration: p.Translation},
		Expansion:   InertiaVector{InitialVelocity: v.Expansion, DesiredDeceleration: p.Expansion},
		Rotation:    InertiaScalar{InitialVelocity: v.Angular, DesiredDeceleration: p.Rotation},
	}
}
