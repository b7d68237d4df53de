package transform_test

import (
	"fmt"

	"github.com/katalvlaran/lvbayes/transform"
)

// ExampleBounded maps an unconstrained coordinate into the breakpoint
// interval (0.5, 2.0) — at t=0 the image is the interval midpoint.
func ExampleBounded() {
	x, _ := transform.Bounded(0, 0.5, 2.0)
	fmt.Printf("x=%.2f\n", x)

	back := transform.BoundedInverse(x, 0.5, 2.0)
	fmt.Printf("t=%.2f\n", back)
	// Output:
	// x=1.25
	// t=0.00
}

// ExampleCorrCholesky3 builds a correlation Cholesky factor from three
// unconstrained entries; at 0 the factor is the identity.
func ExampleCorrCholesky3() {
	c, ok := transform.CorrCholesky3([]float64{0, 0, 0})
	fmt.Println(ok)
	fmt.Printf("diag=[%.0f %.0f %.0f]\n", c.L[0][0], c.L[1][1], c.L[2][2])
	// Output:
	// true
	// diag=[1 1 1]
}
