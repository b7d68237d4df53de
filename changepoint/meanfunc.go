package changepoint

import "math"

// BrokenStick evaluates the piecewise-linear mean function
//
//	intercept + slope·min(dose − breakpoint, 0)
//
// i.e. flat at intercept at and above the breakpoint, linear with the
// given slope below it. The branchless min form is continuous at the
// breakpoint: both sides evaluate to exactly intercept there.
func BrokenStick(dose, intercept, slope, breakpoint float64) float64 {
	return intercept + slope*math.Min(dose-breakpoint, 0)
}
