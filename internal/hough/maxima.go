package hough

// extend builds the extended accumulator. Columns [0, nAng) copy acc,
// columns [nAng, 2nAng) hold acc with the radial axis reversed, because the
// line (theta+pi, -r) is the line (theta, r).
func extend(acc *Grid) *Grid {
	nAng, h := acc.width, acc.height
	ext := newGrid(2*nAng, h)
	for ai := 0; ai < nAng; ai++ {
		for ri := 0; ri < h; ri++ {
			ext.set(ai, ri, acc.At(ai, ri))
			ext.set(nAng+ai, ri, acc.At(ai, h-1-ri))
		}
	}
	return ext
}

// localMaxima scans the extended grid for cells strictly greater than all 8
// neighbours and returns them in an nAng-wide grid, together with the number
// found. Extended columns 1..nAng are scanned: column nAng is the mirrored
// copy of column 0, so column 0 gets its angular neighbours nAng-1 and 1
// from both sides of the seam. Border radius rows are never maxima.
func localMaxima(ext *Grid, nAng int) (*Grid, int) {
	h := ext.height
	maxima := newGrid(nAng, h)
	count := 0
	for ai := 1; ai <= nAng; ai++ {
		for ri := 1; ri < h-1; ri++ {
			if !isLocalMax(ext, ai, ri) {
				continue
			}
			mi, mr := foldBack(ai, ri, nAng, h)
			maxima.set(mi, mr, ext.At(ai, ri))
			count++
		}
	}
	return maxima, count
}

// isLocalMax reports whether ext(ai, ri) is strictly greater than its 8
// neighbours. Equal neighbours disqualify it, so plateaus yield no maxima.
// Angular neighbours wrap around the extended grid, which only matters when
// nAng == 1.
func isLocalMax(ext *Grid, ai, ri int) bool {
	vc := ext.At(ai, ri)
	for da := -1; da <= 1; da++ {
		na := (ai + da + ext.width) % ext.width
		for dr := -1; dr <= 1; dr++ {
			if da == 0 && dr == 0 {
				continue
			}
			if vc <= ext.At(na, ri+dr) {
				return false
			}
		}
	}
	return true
}

// foldBack maps a cell of the extended grid, with column ai in [0, 2nAng],
// to the accumulator cell it duplicates.
//
//	ai <  nAng:          (ai, ri)
//	nAng <= ai < 2nAng:  (ai-nAng, height-1-ri)   mirrored half; ai == nAng is the seam
//	ai == 2nAng:         (0, ri)                  full wrap to the start
func foldBack(ai, ri, nAng, height int) (int, int) {
	switch {
	case ai < nAng:
		return ai, ri
	case ai < 2*nAng:
		return ai - nAng, height - 1 - ri
	default:
		return ai % (2 * nAng), ri
	}
}
