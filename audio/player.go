// Package audio plays cue sound effects and per-level music on ebiten's
// audio context. Missing assets are logged once and then ignored.
package audio

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/bossrush/assets"
	"github.com/milk9111/bossrush/component"
)

const (
	sampleRate        = 44100
	defaultSFXVolume  = 0.6
	defaultMusicVol   = 0.5
	defaultFadeFrames = 30
)

// Player implements the session's sound sink.
type Player struct {
	ctx     *audio.Context
	sounds  map[component.Cue]*audio.Player
	tracks  map[string]*audio.Player
	missing map[string]bool
	muted   bool

	current string
	volume  float64
	pending string
	fading  bool
	step    float64
}

// NewPlayer returns a player on the shared audio context.
func NewPlayer() *Player {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Player{
		ctx:     ctx,
		sounds:  map[component.Cue]*audio.Player{},
		tracks:  map[string]*audio.Player{},
		missing: map[string]bool{},
	}
}

// SetMuted silences both sound effects and music.
func (p *Player) SetMuted(muted bool) {
	if p == nil {
		return
	}
	p.muted = muted
	if cur := p.tracks[p.current]; cur != nil {
		if muted {
			cur.SetVolume(0)
		} else {
			cur.SetVolume(p.volume)
		}
	}
}

// Play fires a one-shot sound for cue.
func (p *Player) Play(cue component.Cue) {
	if p == nil || p.muted || cue == "" {
		return
	}
	sp, ok := p.sounds[cue]
	if !ok {
		var err error
		sp, err = p.load(assets.SoundPath(string(cue)))
		if err != nil {
			p.warn(string(cue), err)
		}
		if sp != nil {
			sp.SetVolume(defaultSFXVolume)
		}
		p.sounds[cue] = sp
	}
	if sp == nil {
		return
	}
	_ = sp.Rewind()
	sp.Play()
}

// PlayMusic fades out the current track and starts track. An empty name
// fades to silence. Requesting the playing track is a no-op.
func (p *Player) PlayMusic(track string) {
	if p == nil {
		return
	}
	track = strings.TrimSpace(track)
	if track == p.current && !p.fading {
		return
	}
	p.pending = track
	cur := p.tracks[p.current]
	if cur == nil {
		p.switchToPending()
		return
	}
	p.fading = true
	p.step = p.volume / defaultFadeFrames
	if p.step <= 0 {
		p.step = 1
	}
}

// StopMusic fades the current track out.
func (p *Player) StopMusic() {
	p.PlayMusic("")
}

// Update advances fades and loops the current track. Call once per frame.
func (p *Player) Update() {
	if p == nil {
		return
	}
	cur := p.tracks[p.current]
	if p.fading {
		if cur == nil {
			p.switchToPending()
			return
		}
		p.volume -= p.step
		if p.volume > 0 {
			cur.SetVolume(p.volume)
			return
		}
		cur.Pause()
		_ = cur.Rewind()
		p.switchToPending()
		return
	}
	if cur != nil && !cur.IsPlaying() {
		_ = cur.Rewind()
		cur.Play()
	}
}

func (p *Player) switchToPending() {
	track := p.pending
	p.pending = ""
	p.fading = false
	p.step = 0
	p.current = ""
	p.volume = 0
	if track == "" {
		return
	}

	tp, ok := p.tracks[track]
	if !ok {
		var err error
		tp, err = p.load(assets.MusicPath(track))
		if err != nil {
			p.warn("music/"+track, err)
		}
		p.tracks[track] = tp
	}
	if tp == nil {
		return
	}
	p.current = track
	p.volume = defaultMusicVol
	_ = tp.Rewind()
	if p.muted {
		tp.SetVolume(0)
	} else {
		tp.SetVolume(p.volume)
	}
	tp.Play()
}

func (p *Player) load(path string) (*audio.Player, error) {
	b, err := assets.LoadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(p.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return p.ctx.NewPlayer(stream)
}

func (p *Player) warn(key string, err error) {
	if p.missing[key] {
		return
	}
	p.missing[key] = true
	log.Printf("audio: %s unavailable, continuing silently: %v", key, err)
}

// Nop discards every request.
type Nop struct{}

func (Nop) Play(component.Cue) {}
func (Nop) PlayMusic(string)   {}
func (Nop) StopMusic()         {}
func (Nop) Update()            {}
