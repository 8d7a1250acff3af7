package facematch

// XYWHToCorners converts an [x, y, w, h] box to [x1, y1, x2, y2] corner format.
// Boxes that do not have exactly four values yield nil.
func XYWHToCorners(box []float64) []float64 {
	if len(box) != 4 {
		return nil
	}
	return []float64{
		box[0],
		box[1],
		box[0] + box[2],
		box[1] + box[3],
	}
}

// CornersToXYWH converts an [x1, y1, x2, y2] box to [x, y, w, h].
func CornersToXYWH(box []float64) []float64 {
	if len(box) != 4 {
		return nil
	}
	return []float64{box[0], box[1], box[2] - box[0], box[3] - box[1]}
}
