package wizard

import "github.com/jonathan/cv-builder/internal/types"

// Transition describes the outcome of a navigation request.
type Transition struct {
	From  Step
	To    Step
	Moved bool
	// AutoEnhance is set on the first arrival at review since it was last left.
	AutoEnhance bool
}

// Controller tracks the current step. It holds no document; callers pass the
// draft to the gated operations.
type Controller struct {
	index           int
	hasAutoEnhanced bool
}

// NewController starts at the first step.
func NewController() *Controller {
	return &Controller{}
}

// Current returns the current step.
func (c *Controller) Current() Step {
	return Steps[c.index]
}

// Index returns the position of the current step.
func (c *Controller) Index() int {
	return c.index
}

// Progress returns completion as a percentage of steps reached.
func (c *Controller) Progress() float64 {
	return float64(c.index+1) / float64(len(Steps)) * 100
}

// CanGoNext reports whether Next would move.
func (c *Controller) CanGoNext(cv *types.CVData) bool {
	return c.index < len(Steps)-1 && Validate(c.Current(), cv)
}

// CanGoPrevious reports whether Previous would move.
func (c *Controller) CanGoPrevious() bool {
	return c.index > 0
}

// Next advances one step when the current gate passes; otherwise nothing changes.
func (c *Controller) Next(cv *types.CVData) Transition {
	if !c.CanGoNext(cv) {
		return c.stay()
	}
	return c.moveTo(c.index + 1)
}

// Previous goes back one step.
func (c *Controller) Previous() Transition {
	if !c.CanGoPrevious() {
		return c.stay()
	}
	return c.moveTo(c.index - 1)
}

// GoTo jumps to step. Backwards is always allowed; forwards only when every
// gate between here and step passes.
func (c *Controller) GoTo(step Step, cv *types.CVData) Transition {
	target := IndexOf(step)
	if target < 0 || target == c.index {
		return c.stay()
	}
	if target > c.index {
		for i := c.index; i < target; i++ {
			if !Validate(Steps[i], cv) {
				return c.stay()
			}
		}
	}
	return c.moveTo(target)
}

// HasAutoEnhanced reports whether the review visit already requested enhancement.
func (c *Controller) HasAutoEnhanced() bool {
	return c.hasAutoEnhanced
}

// ResetAutoEnhance re-arms the automatic enhancement, e.g. after a failure.
func (c *Controller) ResetAutoEnhance() {
	c.hasAutoEnhanced = false
}

// Reset returns to the first step with the gate re-armed.
func (c *Controller) Reset() {
	c.index = 0
	c.hasAutoEnhanced = false
}

func (c *Controller) stay() Transition {
	return Transition{From: c.Current(), To: c.Current()}
}

func (c *Controller) moveTo(i int) Transition {
	tr := Transition{From: c.Current(), To: Steps[i], Moved: true}
	if tr.From == StepReview {
		c.hasAutoEnhanced = false
	}
	c.index = i
	if tr.To == StepReview && !c.hasAutoEnhanced {
		c.hasAutoEnhanced = true
		tr.AutoEnhance = true
	}
	return tr
}
