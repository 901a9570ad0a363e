package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timerFlag overrides the time limit of every level. It accepts seconds,
// MM:SS, or off/false for no limit.
type timerFlag struct {
	seconds int
	set     bool
}

func (t *timerFlag) String() string {
	if !t.set {
		return ""
	}
	if t.seconds == 0 {
		return "off"
	}
	return fmt.Sprintf("%d:%02d", t.seconds/60, t.seconds%60)
}

func (t *timerFlag) Set(s string) error {
	switch s {
	case "off", "false", "0":
		t.seconds, t.set = 0, true
		return nil
	}

	// Try parsing as simple integer first
	if val, err := strconv.Atoi(s); err == nil && val > 0 {
		t.seconds, t.set = val, true
		return nil
	}

	// Try parsing MM:SS
	parts := strings.Split(s, ":")
	if len(parts) == 2 {
		min, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && min >= 0 && sec >= 0 && sec < 60 && min+sec > 0 {
			t.seconds, t.set = min*60+sec, true
			return nil
		}
	}

	return fmt.Errorf("invalid timer format: %s (use 'MM:SS', seconds or 'off')", s)
}

func (t *timerFlag) Type() string {
	return "duration"
}

// Duration returns the limit; zero means unlimited.
func (t *timerFlag) Duration() time.Duration {
	return time.Duration(t.seconds) * time.Second
}
