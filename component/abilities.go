package component

// Abilities lists the optional player upgrades. The session keeps one set for
// what is unlocked and one for what is equipped.
type Abilities struct {
	Homing  bool `json:"homing"`
	Spread  bool `json:"spread"`
	Dash    bool `json:"dash"`
	Shield  bool `json:"shield"`
	HPBoost bool `json:"hp_boost"`
}

// And keeps only the abilities present in both sets.
func (a Abilities) And(b Abilities) Abilities {
	return Abilities{
		Homing:  a.Homing && b.Homing,
		Spread:  a.Spread && b.Spread,
		Dash:    a.Dash && b.Dash,
		Shield:  a.Shield && b.Shield,
		HPBoost: a.HPBoost && b.HPBoost,
	}
}

// Any reports whether at least one ability is set.
func (a Abilities) Any() bool {
	return a.Homing || a.Spread || a.Dash || a.Shield || a.HPBoost
}

// All reports whether every ability is set.
func (a Abilities) All() bool {
	return a.Homing && a.Spread && a.Dash && a.Shield && a.HPBoost
}

// Grant sets the named ability. Unknown names are ignored.
func (a *Abilities) Grant(name string) {
	switch name {
	case "homing":
		a.Homing = true
	case "spread":
		a.Spread = true
	case "dash":
		a.Dash = true
	case "shield":
		a.Shield = true
	case "hp_boost":
		a.HPBoost = true
	}
}

// Toggle flips the ability at index i in menu order.
func (a *Abilities) Toggle(i int) {
	switch i {
	case 0:
		a.Homing = !a.Homing
	case 1:
		a.Spread = !a.Spread
	case 2:
		a.Dash = !a.Dash
	case 3:
		a.Shield = !a.Shield
	case 4:
		a.HPBoost = !a.HPBoost
	}
}

// AbilityNames is the menu order used by Toggle.
var AbilityNames = [...]string{"homing", "spread", "dash", "shield", "hp_boost"}
