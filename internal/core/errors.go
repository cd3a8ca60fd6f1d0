package core

import "fmt"

// OutOfRangeError reports an explicit reset with an obstacle position or
// floor height outside the configured bounds. The reset call that produced
// it must leave the previous episode state untouched.
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %v out of range [%v, %v)", e.Field, e.Value, e.Min, e.Max)
}

// IllegalActionError reports a step with an action outside the legal set.
// The step that produced it must leave the episode state untouched.
type IllegalActionError struct {
	Action Action
	Legal  []Action
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("unrecognized action %d, legal actions are %v", int(e.Action), e.Legal)
}
