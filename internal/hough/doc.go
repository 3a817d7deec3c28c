// Package hough implements the classic Hough transform for straight lines.
//
// A line is represented in Hesse normal form relative to a fixed reference
// point (xRef, yRef), usually the image center:
//
//	(x - xRef)*cos(theta) + (y - yRef)*sin(theta) = r
//
// The angle theta covers the half circle [0, pi) in NAng steps and the signed
// radius r covers [-rMax, rMax] in 2*NRad+1 bins, where rMax is half the
// diagonal of the image plane.
//
// # Pipeline
//
// Data flows in one direction and every stage produces a new grid:
//
//  1. Voting: each input point distributes a total vote of 1.0 into every
//     angle column, split between the two radial bins nearest to its radius.
//  2. Extension: the accumulator is widened to 2*NAng columns by appending a
//     radially mirrored copy, so that the line (theta+pi, -r) sits next to
//     (theta, r) and angular neighbours exist across the 0/pi seam.
//  3. Local maxima: cells strictly greater than all 8 neighbours in the
//     extended grid are folded back into an accumulator-shaped maxima grid.
//  4. Extraction: maxima at or above a vote threshold become Line values,
//     ranked by vote count.
//
// Stages 2-4 run on every call to Transform.Lines and are pure functions of
// the accumulator, so repeated queries return identical results.
//
// # Vote Splitting
//
// Votes are not added to a single radial bin. The fractional radial index is
// split linearly between its two neighbours, which removes the aliasing
// ridges produced by integer binning at the cost of slightly wider peaks.
// Reported vote counts are therefore rounded from floating-point sums.
//
// # Boundaries
//
// A point whose radius falls outside the radial range for some angle column
// contributes nothing to that column. Points inside the image plane always
// fall inside the range; points outside it may vote in some columns only.
//
// # Thread Safety
//
// A Transform is not safe for concurrent mutation, but it is never mutated
// after construction. Grids returned by accessors are read-only views.
package hough
