// Package script runs the tengo pattern weighting used by multi-pattern bosses.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/prefabs"
)

// DefaultWeights is the script shipped in prefabs/scripts.
const DefaultWeights = "pattern_weights.tengo"

// Picker implements boss.Picker on top of a compiled tengo script. The script
// reads the globals archetype, phase, hp and patterns and writes result.
type Picker struct {
	name     string
	compiled *tengo.Compiled
	failed   bool
}

var _ boss.Picker = (*Picker)(nil)

// NewPicker loads and compiles the named script.
func NewPicker(name string) (*Picker, error) {
	p := &Picker{name: name}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Compile builds a picker from source without touching prefabs.
func Compile(name string, src []byte) (*Picker, error) {
	compiled, err := compile(src)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Picker{name: name, compiled: compiled}, nil
}

// Reload recompiles the script from prefabs. On failure the previous script
// stays in use.
func (p *Picker) Reload() error {
	src, err := prefabs.LoadScript(p.name)
	if err != nil {
		return fmt.Errorf("script: load %s: %w", p.name, err)
	}
	compiled, err := compile(src)
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", p.name, err)
	}
	p.compiled = compiled
	p.failed = false
	return nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	s := tengo.NewScript(src)
	_ = s.Add("archetype", "")
	_ = s.Add("phase", 0)
	_ = s.Add("hp", 1.0)
	_ = s.Add("patterns", []interface{}{})

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return s.Compile()
}

// Weights runs the script. Any failure yields nil, which the boss treats as
// uniform weights; the first runtime error is logged.
func (p *Picker) Weights(a boss.Archetype, phase int, hp float64, patterns []string) []float64 {
	if p == nil || p.compiled == nil {
		return nil
	}
	w, err := p.run(a, phase, hp, patterns)
	if err != nil {
		if !p.failed {
			log.Printf("script: %s: %v", p.name, err)
			p.failed = true
		}
		return nil
	}
	return w
}

func (p *Picker) run(a boss.Archetype, phase int, hp float64, patterns []string) ([]float64, error) {
	names := make([]interface{}, len(patterns))
	for i, n := range patterns {
		names[i] = n
	}
	c := p.compiled
	if err := c.Set("archetype", string(a)); err != nil {
		return nil, err
	}
	if err := c.Set("phase", phase); err != nil {
		return nil, err
	}
	if err := c.Set("hp", hp); err != nil {
		return nil, err
	}
	if err := c.Set("patterns", names); err != nil {
		return nil, err
	}
	if err := c.Run(); err != nil {
		return nil, err
	}
	if !c.IsDefined("result") {
		return nil, fmt.Errorf("result not defined")
	}

	raw := c.Get("result").Array()
	if len(raw) != len(patterns) {
		return nil, fmt.Errorf("result has %d weights for %d patterns", len(raw), len(patterns))
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		switch n := v.(type) {
		case int64:
			out[i] = float64(n)
		case float64:
			out[i] = n
		default:
			return nil, fmt.Errorf("weight %d is %T", i, v)
		}
	}
	return out, nil
}
