// Package follow turns a driven position into a lagging, springy displacement suitable for driving a deformer.
package follow

import (
	"github.com/golang/geo/r3"
)

const (
	// DefaultFollow is the fraction of the remaining distance pulled in each step.
	DefaultFollow = 0.3
	// DefaultRestore is how quickly velocity converges on the pull.
	DefaultRestore = 0.5
	// ResetTime is the time at which state is cleared, the first frame of a playback range.
	ResetTime = 1.0
)

// Follower integrates a rest position and rest velocity toward a target. It is not safe for concurrent use; use one
// Follower per driven object.
type Follower struct {
	Follow  float64
	Restore float64

	posRest r3.Vector
	velRest r3.Vector
}

// NewFollower returns a Follower at rest with the default gains.
func NewFollower() *Follower {
	return &Follower{Follow: DefaultFollow, Restore: DefaultRestore}
}

// Step advances the follower toward target and returns the displacement for this frame. Stepping at ResetTime
// clears the state first.
func (f *Follower) Step(time float64, target r3.Vector) r3.Vector {
	if time == ResetTime {
		f.Reset()
	}
	newPos := target.Sub(f.posRest).Mul(f.Follow)
	vel := f.velRest.Add(newPos.Sub(f.velRest).Mul(f.Restore))
	offset := f.posRest.Add(f.velRest)

	f.posRest = offset
	f.velRest = vel
	return offset
}

// Reset clears the rest position and velocity.
func (f *Follower) Reset() {
	f.posRest = r3.Vector{}
	f.velRest = r3.Vector{}
}

// State returns the current rest position and velocity.
func (f *Follower) State() (r3.Vector, r3.Vector) {
	return f.posRest, f.velRest
}
