package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
	"gopkg.in/yaml.v3"
)

var ErrUnknownArchetype = errors.New("prefabs: unknown boss archetype")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type DashSpec struct {
	Window           int     `yaml:"window"`
	Distance         float64 `yaml:"distance"`
	Cooldown         int     `yaml:"cooldown"`
	InvincibleFrames int     `yaml:"invincible_frames"`
	ActiveFrames     int     `yaml:"active_frames"`
}

type PlayerSpec struct {
	Name             string   `yaml:"name"`
	Speed            float64  `yaml:"speed"`
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	Lives            int      `yaml:"lives"`
	InvincibleFrames int      `yaml:"invincible_frames"`
	FireInterval     int      `yaml:"fire_interval"`
	Dash             DashSpec `yaml:"dash"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning converts the spec, keeping the defaults for anything left at zero.
func (p *PlayerSpec) Tuning() encounter.Tuning {
	tn := encounter.DefaultTuning()
	if p == nil {
		return tn
	}
	setF := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	setF(&tn.Speed, p.Speed)
	setF(&tn.Width, p.Width)
	setF(&tn.Height, p.Height)
	setI(&tn.Lives, p.Lives)
	setI(&tn.InvincibleFrames, p.InvincibleFrames)
	setI(&tn.FireInterval, p.FireInterval)
	setI(&tn.DashWindow, p.Dash.Window)
	setF(&tn.DashDistance, p.Dash.Distance)
	setI(&tn.DashCooldown, p.Dash.Cooldown)
	setI(&tn.DashInvFrames, p.Dash.InvincibleFrames)
	setI(&tn.DashActiveFrames, p.Dash.ActiveFrames)
	return tn
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LevelSpec is one entry of the boss roster.
type LevelSpec struct {
	Name      string    `yaml:"name"`
	Archetype string    `yaml:"archetype"`
	HP        float64   `yaml:"hp"`
	Radius    float64   `yaml:"radius"`
	Spawn     PointSpec `yaml:"spawn"`
	Color     YAMLColor `yaml:"color"`
	Unlock    string    `yaml:"unlock"`
	Music     string    `yaml:"music"`
}

// Template builds the boss template for this level.
func (l LevelSpec) Template() boss.Template {
	return boss.Template{
		Name:      l.Name,
		Archetype: boss.Archetype(l.Archetype),
		HP:        l.HP,
		Radius:    l.Radius,
		Spawn:     cp.Vector{X: l.Spawn.X, Y: l.Spawn.Y},
		Color:     l.Color.RGBA(),
	}
}

type RosterSpec struct {
	Levels []LevelSpec `yaml:"levels"`
}

func LoadRosterSpec() (*RosterSpec, error) {
	data, err := Load("levels.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load levels.yaml: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes and validates a roster document.
func ParseRoster(data []byte) (*RosterSpec, error) {
	var spec RosterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal levels.yaml: %w", err)
	}
	for i, l := range spec.Levels {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("prefabs: level %d: %w", i+1, err)
		}
	}
	return &spec, nil
}

func (l LevelSpec) validate() error {
	switch boss.Archetype(l.Archetype) {
	case boss.ArchetypeStomp, boss.ArchetypeOrbit, boss.ArchetypeBounce,
		boss.ArchetypeSplitCore, boss.ArchetypeCrescent, boss.ArchetypeGrand:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownArchetype, l.Archetype)
	}
	if l.HP <= 0 {
		return fmt.Errorf("%s: hp must be positive, got %v", l.Name, l.HP)
	}
	if l.Unlock != "" {
		known := false
		for _, n := range component.AbilityNames {
			known = known || n == l.Unlock
		}
		if !known {
			return fmt.Errorf("%s: unknown unlock %q", l.Name, l.Unlock)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// RGBA returns the color as color.RGBA, white when unset.
func (c YAMLColor) RGBA() color.RGBA {
	if c.Color == nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
