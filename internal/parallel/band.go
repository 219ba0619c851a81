package parallel

// Band is a half-open range of canvas rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Split divides rows into at most parts contiguous bands of near-equal
// height. The bands cover [0, rows) in order without gaps. It returns nil
// when rows is not positive.
func Split(rows, parts int) []Band {
	if rows <= 0 {
		return nil
	}
	parts = min(max(parts, 1), rows)

	bands := make([]Band, parts)
	base, extra := rows/parts, rows%parts
	y := 0
	for i := range bands {
		h := base
		if i < extra {
			h++
		}
		bands[i] = Band{Y0: y, Y1: y + h}
		y += h
	}
	return bands
}
