package component

// Key is a logical game key; backends map physical keys onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeySwitch
	KeySlow
	KeyPause
	KeyConfirm
	KeyBack
	KeyRetry
	KeyDebug
)

// KeySet is a bitset of logical keys.
type KeySet uint32

func (s KeySet) Has(k Key) bool {
	return s&(1<<uint(k)) != 0
}

func (s *KeySet) Set(k Key) {
	*s |= 1 << uint(k)
}

// Input is the per-frame input snapshot: keys held this frame and keys that
// went down this frame.
type Input struct {
	Held    KeySet
	Pressed KeySet
}

// Axis returns the held movement direction as -1/0/1 per axis.
func (in Input) Axis() (float64, float64) {
	x, y := 0.0, 0.0
	if in.Held.Has(KeyLeft) {
		x--
	}
	if in.Held.Has(KeyRight) {
		x++
	}
	if in.Held.Has(KeyUp) {
		y--
	}
	if in.Held.Has(KeyDown) {
		y++
	}
	return x, y
}

// DirectionKey maps a dash direction to its key.
func DirectionKey(d Direction) Key {
	switch d {
	case DirUp:
		return KeyUp
	case DirDown:
		return KeyDown
	case DirLeft:
		return KeyLeft
	}
	return KeyRight
}
