package parallel

import "errors"

// ErrClosed is returned by Run on a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// DefaultBandHeight is the number of rows per band when none is given.
const DefaultBandHeight = 16

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.End - b.Start }

// SplitRows divides height rows into consecutive bands of at most
// bandHeight rows. The last band may be shorter. Values of bandHeight
// below 1 select DefaultBandHeight.
func SplitRows(height, bandHeight int) []Band {
	if height <= 0 {
		return nil
	}
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}
	bands := make([]Band, 0, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{Start: y, End: min(y+bandHeight, height)})
	}
	return bands
}
