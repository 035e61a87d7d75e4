//go:build verify_filters
// +build verify_filters

package ir

import (
	"fmt"
	"math/cmplx"
)

const stabilityEpsilon = 1e-12

func init() {
	fmt.Println("Filter stability verification enabled.")
}

// verifySections panics if any pole of the cascade lies on or outside the unit circle.
func verifySections(sos SOS) {
	for i, s := range sos {
		for _, p := range s.Poles() {
			if cmplx.Abs(p) >= 1-stabilityEpsilon {
				panic(fmt.Sprintf("section %d is unstable: pole %v", i, p))
			}
		}
	}
}
