package component

// Cue names a fire-and-forget sound trigger.
type Cue string

const (
	CueShoot          Cue = "shoot"
	CueEnemyHit       Cue = "enemy_hit"
	CueReflect        Cue = "reflect"
	CuePlayerHit      Cue = "player_hit"
	CueShieldBreak    Cue = "shield_break"
	CueDash           Cue = "dash"
	CueBossClear      Cue = "boss_clear"
	CueShapeTransform Cue = "shape_transform"
	CuePhase          Cue = "phase"
	CueStomp          Cue = "stomp"
	CueBurst          Cue = "burst"
	CueBeamCharge     Cue = "beam_charge"
	CueBeam           Cue = "beam"
	CueSpear          Cue = "spear"
	CueExplosion      Cue = "explosion"
	CueMenuMove       Cue = "menu_move"
	CueMenuSelect     Cue = "menu_select"
)
