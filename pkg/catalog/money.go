package catalog

import "math"

// CentsFromDollars converts a vendor dollar amount to integer cents,
// rounding half away from zero. Vendors disagree on rounding conventions;
// converting once at the boundary keeps all arithmetic drift-free.
func CentsFromDollars(dollars float64) int64 {
	if dollars < 0 {
		return -int64(math.Round(-dollars * 100))
	}
	return int64(math.Round(dollars * 100))
}
