// Package autoscroll drives timer-based scrolling of the song view.
//
// The controller is a two-state machine (Stopped, Running). It owns no timer
// itself: Start hands back a run token and the caller schedules ticks at
// Params.Interval, passing the token back to Tick. Stop invalidates the token,
// so a tick that was already scheduled becomes a no-op.
package autoscroll

import (
	"strconv"
	"strings"
	"time"
)

// Speed bounds for the speed control.
const (
	MinSpeed     = 1
	MaxSpeed     = 10
	DefaultSpeed = 5
)

// Control labels.
const (
	LabelStopped = "Auto Scroll"
	LabelRunning = "Stop Scroll"
)

// boundarySlack is how close to the end (in pixels) counts as the end.
const boundarySlack = 2

// Params are the per-run scroll parameters derived from a speed value.
type Params struct {
	Rank     int
	Step     int // pixels per tick
	Interval time.Duration
}

// Compute derives scroll parameters from a speed in [MinSpeed, MaxSpeed].
// A higher speed gives a lower rank.
func Compute(speed int) Params {
	rank := 21 - ClampSpeed(speed)
	return Params{
		Rank:     rank,
		Step:     2 + 2*rank,
		Interval: time.Duration(20+4*rank) * time.Millisecond,
	}
}

// ParseSpeed reads a speed control value as a base-10 integer and clamps it.
// Unparsable input yields DefaultSpeed.
func ParseSpeed(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultSpeed
	}
	return ClampSpeed(v)
}

// ClampSpeed forces v into [MinSpeed, MaxSpeed].
func ClampSpeed(v int) int {
	switch {
	case v < MinSpeed:
		return MinSpeed
	case v > MaxSpeed:
		return MaxSpeed
	default:
		return v
	}
}

// Surface is the scrollable area, measured in pixels.
type Surface interface {
	ScrollY() int
	MaxScroll() int
	ScrollBy(dy int)
}

// Token identifies one Running period. The zero Token is never valid.
type Token uint64

// Controller is the autoscroll state machine.
type Controller struct {
	speed   int
	running bool
	token   Token
	next    Token
	params  Params
}

// New returns a stopped controller at the given speed.
func New(speed int) *Controller {
	return &Controller{speed: ClampSpeed(speed)}
}

// Running reports whether a run is active.
func (c *Controller) Running() bool {
	return c.running
}

// Speed returns the current speed setting.
func (c *Controller) Speed() int {
	return c.speed
}

// Params returns the parameters of the current run, or those the next run
// would use when stopped.
func (c *Controller) Params() Params {
	if c.running {
		return c.params
	}
	return Compute(c.speed)
}

// Token returns the active run token, zero when stopped.
func (c *Controller) Token() Token {
	return c.token
}

// Label returns the control label for the current state.
func (c *Controller) Label() string {
	if c.running {
		return LabelRunning
	}
	return LabelStopped
}

// Start begins a run. It is only valid from Stopped; ok is false otherwise.
func (c *Controller) Start() (tok Token, p Params, ok bool) {
	if c.running {
		return 0, c.params, false
	}
	c.next++
	c.token = c.next
	c.params = Compute(c.speed)
	c.running = true
	return c.token, c.params, true
}

// Stop ends the current run. Calling it while stopped has no effect.
func (c *Controller) Stop() {
	c.running = false
	c.token = 0
}

// Toggle stops a running controller or starts a stopped one. It reports
// whether the controller is running afterwards.
func (c *Controller) Toggle() bool {
	if c.running {
		c.Stop()
		return false
	}
	c.Start()
	return true
}

// SetSpeed changes the speed. While running the current run is stopped and a
// new one started immediately; restarted reports that case.
func (c *Controller) SetSpeed(v int) (restarted bool) {
	c.speed = ClampSpeed(v)
	if !c.running {
		return false
	}
	c.Stop()
	c.Start()
	return true
}

// Tick advances one step of the run identified by tok. It returns true when
// the caller should schedule another tick. Stale tokens are ignored. The end
// check runs before every step because content height can change between
// ticks.
func (c *Controller) Tick(tok Token, s Surface) bool {
	if !c.running || tok != c.token {
		return false
	}
	if s.ScrollY() >= s.MaxScroll()-boundarySlack {
		c.Stop()
		return false
	}
	s.ScrollBy(c.params.Step)
	return true
}
