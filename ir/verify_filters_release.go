//go:build !verify_filters
// +build !verify_filters

package ir

// Stability checks are compiled out unless built with -tags verify_filters.
func verifySections(sos SOS) {}
