package table

import (
	"fmt"
	"time"
)

// Speed is how quickly cards are dealt between automatic steps
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Speeds returns the recognised speeds from slowest to fastest
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedNormal, SpeedFast}
}

// Interval returns the delay between automatic steps. Unknown speeds deal
// at the normal pace.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 3 * time.Second
	case SpeedFast:
		return 1 * time.Second
	default:
		return 2 * time.Second
	}
}

func (s Speed) String() string {
	return string(s)
}

// ParseSpeed accepts "slow", "normal" or "fast". An empty string is normal.
func ParseSpeed(s string) (Speed, error) {
	if s == "" {
		return SpeedNormal, nil
	}
	for _, speed := range Speeds() {
		if string(speed) == s {
			return speed, nil
		}
	}
	return "", fmt.Errorf("invalid dealing speed %q: must be slow, normal or fast", s)
}
