// Package imaging turns raster images into the binary masks consumed by the
// Hough transform, and renders analysis results back into images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// A Mask always starts at (0,0) even when it was built from a sub-region or
// from an image whose bounds do not start at the origin. Callers that crop
// must add the region origin back when mapping mask pixels to the image.
//
// # Masks
//
// BuildMask selects between two strategies:
//   - canny: grayscale, Gaussian blur, Sobel, non-maximum suppression and
//     hysteresis. Produces thin edges, best for photographs and filled shapes.
//   - threshold: luminance cut via bild/segment. Best for line drawings where
//     strokes are already thin.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Mask and Canvas are not;
// share them only after construction is complete.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates or regions outside image bounds
//   - Invalid thresholds or an unknown edge mode
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
