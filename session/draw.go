package session

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/gfx"
	"github.com/milk9111/bossrush/save"
	"golang.org/x/image/colornames"
)

const lineHeight = 18.0

var (
	textColor    = colornames.White
	dimColor     = colornames.Gray
	cursorColor  = colornames.Gold
	hpBackColor  = colornames.Darkslategray
	hpColor      = colornames.Crimson
	overlayColor = colornames.Black
)

var staffRoll = []string{
	"BOSS RUSH",
	"",
	"Design, code and bosses",
	"the bossrush team",
	"",
	"Thank you for playing",
}

// ShakeOffset is the screen offset for the current frame's shake.
func (s *Session) ShakeOffset() (float64, float64) {
	if s.Encounter == nil || s.Encounter.Shake <= 0 || s.Mode != ModePlaying {
		return 0, 0
	}
	amp := float64(min(s.Encounter.Shake, 6))
	dx := float64(s.Frame%3 - 1)
	dy := float64((s.Frame/3)%3 - 1)
	return dx * amp, dy * amp
}

// Draw renders the current mode.
func (s *Session) Draw(c gfx.Canvas) {
	switch s.Mode {
	case ModeTitle:
		s.drawTitle(c)
	case ModeLevelSelect:
		s.drawLevelSelect(c)
	case ModeEquipment:
		s.drawEquipment(c)
	case ModeSaveLoad:
		s.drawSaveLoad(c)
	case ModeWaiting:
		lvl, _ := s.current()
		centered(c, lvl.Name, 240, textColor)
		centered(c, "Press Enter to start", 280, dimColor)
	case ModePlaying, ModePaused:
		s.drawFight(c)
	case ModeEnd:
		s.drawFight(c)
		c.Fade(overlayColor, 0.5)
		if s.Encounter != nil && s.Encounter.Result == encounter.Won {
			centered(c, "CLEAR", 240, cursorColor)
			centered(c, "Enter: level select   R: retry", 280, textColor)
		} else {
			centered(c, "GAME OVER", 240, hpColor)
			centered(c, "Enter/R: retry   Esc: level select", 280, textColor)
		}
		if s.Status != "" {
			centered(c, s.Status, 320, dimColor)
		}
	case ModeStaffRoll:
		y := common.ScreenHeight - float64(s.StaffTimer)*0.8
		for i, line := range staffRoll {
			centered(c, line, y+float64(i)*lineHeight*2, textColor)
		}
	}
}

func (s *Session) drawTitle(c gfx.Canvas) {
	centered(c, "BOSS RUSH", 160, cursorColor)
	for i, item := range titleItems {
		menuLine(c, item, 260+float64(i)*lineHeight*1.5, i == s.Cursor, true)
	}
}

func (s *Session) drawLevelSelect(c gfx.Canvas) {
	centered(c, "Select Level", 100, textColor)
	for i, lvl := range s.levels {
		label := lvl.Name
		if !s.Available(i) {
			label = "???"
		}
		label += clearMarks(s.Cleared[lvl.Name])
		menuLine(c, label, 160+float64(i)*lineHeight*1.5, i == s.Cursor, s.Available(i))
	}
	if s.Status != "" {
		centered(c, s.Status, 520, dimColor)
	}
}

func clearMarks(cl save.Clear) string {
	out := ""
	if cl.Plain {
		out += " *"
	}
	if cl.NoEquip {
		out += " N"
	}
	if cl.Rainbow {
		out += " R"
	}
	return out
}

func (s *Session) drawEquipment(c gfx.Canvas) {
	centered(c, "Equipment", 100, textColor)
	for i, name := range component.AbilityNames {
		var mask component.Abilities
		mask.Grant(name)
		unlocked := s.Unlocks.And(mask).Any()
		label := "???"
		if unlocked {
			state := "off"
			if s.Equipped.And(mask).Any() {
				state = "on"
			}
			label = fmt.Sprintf("%-10s %s", name, state)
		}
		menuLine(c, label, 160+float64(i)*lineHeight*1.5, i == s.Cursor, unlocked)
	}
}

func (s *Session) drawSaveLoad(c gfx.Canvas) {
	centered(c, "< "+s.SaveAction.String()+" >", 100, textColor)
	for i := 0; i < save.Slots; i++ {
		menuLine(c, fmt.Sprintf("Slot %d", i+1), 160+float64(i)*lineHeight*1.5, i == s.Cursor, true)
	}
	if s.Status != "" {
		centered(c, s.Status, 400, dimColor)
	}
}

func (s *Session) drawFight(c gfx.Canvas) {
	e := s.Encounter
	if e == nil {
		return
	}
	e.Draw(c)

	c.Text(fmt.Sprintf("Lives %d", e.Player.Lives), 10, 10, textColor)
	c.Text("Weapon "+e.Player.Weapon.String(), 10, 10+lineHeight, textColor)
	if e.Player.Shield {
		c.Text("Shield", 10, 10+2*lineHeight, colornames.Aquamarine)
	}
	if s.NoDamage {
		c.Text("NO DAMAGE", common.ScreenWidth-90, common.ScreenHeight-20, hpColor)
	}

	if b := e.Boss; b != nil && b.Alive {
		const barW, barH = 400.0, 8.0
		x := (common.ScreenWidth - barW) / 2
		c.FillRect(cp.BB{L: x, B: 12, R: x + barW, T: 12 + barH}, hpBackColor)
		c.FillRect(cp.BB{L: x, B: 12, R: x + barW*b.Health.Fraction(), T: 12 + barH}, hpColor)
		c.Text(b.Name, x, 24, textColor)
	}
}

func menuLine(c gfx.Canvas, label string, y float64, selected, enabled bool) {
	clr := textColor
	if !enabled {
		clr = dimColor
	}
	if selected {
		label = "> " + label
		clr = cursorColor
	}
	centered(c, label, y, clr)
}

// centered approximates centering for the 7px wide fallback font.
func centered(c gfx.Canvas, s string, y float64, clr color.Color) {
	x := (common.ScreenWidth - float64(len(s))*7) / 2
	c.Text(s, x, y, clr)
}
