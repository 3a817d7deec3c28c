// Package detection connects images to the Hough line transform.
//
// It builds a binary edge mask from an image (internal/imaging), fills a
// transform from the mask (internal/hough) and describes the resulting lines
// in image terms: where each infinite line crosses the analysed area, which
// stretch of it is actually covered by edge pixels, and what colour those
// pixels have.
//
// # Algorithm Overview
//
//  1. Edge Detection: Canny or luminance threshold, optionally on a region
//  2. Voting: every mask pixel votes for all lines through it
//  3. Peak Finding: strict local maxima of the accumulator, strongest first
//  4. Description: clip each line to the analysed area, trace supporting
//     pixels to recover the visible segment, sample its colour
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// When a region is analysed the transform runs on the cropped mask, but every
// position reported here (endpoints, segments, the reference point) is
// translated back to image coordinates. The line equation
//
//	(x - ref.x)*cos(angle) + (y - ref.y)*sin(angle) = radius
//
// therefore holds for image pixels directly.
//
// # Limitations
//
// Lines are infinite; a segment is the span between the outermost
// supporting pixels, so two collinear strokes with a gap between them are
// reported as one segment. Canny marks both sides of a thick stroke, which
// yields two parallel lines; threshold mode suits line drawings better.
package detection
