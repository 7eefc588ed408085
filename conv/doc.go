// Package conv converts decoded scalar values (bool, integers, floats, strings
// and numeric text) into the leaf types exchanged with a visitor, honoring
// the reader mismatch policy.
package conv
