package ir

import (
	"math"
	"math/cmplx"
)

// MinDB is reported for bins with zero magnitude.
const MinDB = -240.0

// ToDB converts a linear amplitude to decibels.
func ToDB(amplitude float64) float64 {
	if amplitude == 0 {
		return MinDB
	}
	return 20 * math.Log10(math.Abs(amplitude))
}

func FromDB(gainDB float64) float64 {
	return math.Pow(10, gainDB/20)
}

func magnitudeDB(c complex128) float64 {
	return ToDB(cmplx.Abs(c))
}
