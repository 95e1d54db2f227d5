package manipulate

import "testing"

func TestDecelerationConstants(t *testing.T) {
	assertNear(t, "translation", TranslationDeceleration, 0.00096)
	assertNear(t, "expansion", ExpansionDeceleration, 0.0000096)
	assertNear(t, "legacy expansion", LegacyExpansionDeceleration, 9.6)
	assertNear(t, "rotation", RotationDeceleration, 0.00072)
}

func TestComputeInertiaPassesVelocitiesThrough(t *testing.T) {
	tests := []struct {
		name string
		v    Velocities
	}{
		{"zero", Velocities{}},
		{"fling right", Velocities{Linear: Vec2{2.5, 0}}},
		{"spin and zoom", Velocities{Linear: Vec2{-1, 3}, Angular: 0.4, Expansion: Vec2{0.2, 0.2}}},
		{"shrink", Velocities{Expansion: Vec2{-0.5, -0.25}, Angular: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeInertia(tt.v, DefaultDeceleration)

			if p.Translation.InitialVelocity != tt.v.Linear {
				t.Errorf("translation velocity = %v, want %v", p.Translation.InitialVelocity, tt.v.Linear)
			}
			if p.Expansion.InitialVelocity != tt.v.Expansion {
				t.Errorf("expansion velocity = %v, want %v", p.Expansion.InitialVelocity, tt.v.Expansion)
			}
			if p.Rotation.InitialVelocity != tt.v.Angular {
				t.Errorf("rotation velocity = %v, want %v", p.Rotation.InitialVelocity, tt.v.Angular)
			}

			// Decelerations never depend on the velocities.
			if p.Translation.DesiredDeceleration != TranslationDeceleration {
				t.Errorf("translation deceleration = %v", p.Translation.DesiredDeceleration)
			}
			if p.Expansion.DesiredDeceleration != ExpansionDeceleration {
				t.Errorf("expansion deceleration = %v", p.Expansion.DesiredDeceleration)
			}
			if p.Rotation.DesiredDeceleration != RotationDeceleration {
				t.Errorf("rotation deceleration = %v", p.Rotation.DesiredDeceleration)
			}
		})
	}
}

func TestComputeInertiaUsesGivenPolicy(t *testing.T) {
	p := ComputeInertia(Velocities{Linear: Vec2{1, 1}}, LegacyDeceleration)
	if p.Expansion.DesiredDeceleration != LegacyExpansionDeceleration {
		t.Errorf("expansion deceleration = %v, want %v", p.Expansion.DesiredDeceleration, LegacyExpansionDeceleration)
	}

	custom := DecelerationPolicy{Translation: 1, Expansion: 2, Rotation: 3}
	p = ComputeInertia(Velocities{}, custom)
	if p.Translation.DesiredDeceleration != 1 || p.Expansion.DesiredDeceleration != 2 || p.Rotation.DesiredDeceleration != 3 {
		t.Errorf("custom policy not applied: %+v", p)
	}
}
