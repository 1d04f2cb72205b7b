// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberFormat selects how non-integral numbers are rendered. Integral
// numbers always carry exactly one decimal digit ("99.0").
type NumberFormat int

const (
	// Shortest renders the shortest decimal that round-trips (1.25 → "1.25").
	Shortest NumberFormat = iota
	// Fixed2 rounds to two decimals and trims trailing zeros (1.256 → "1.26").
	Fixed2
)

var numberFormatNames = map[NumberFormat]string{
	Shortest: "shortest",
	Fixed2:   "fixed2",
}

// ParseNumberFormat resolves a configuration name to a NumberFormat.
func ParseNumberFormat(s string) (NumberFormat, error) {
	for nf, name := range numberFormatNames {
		if strings.EqualFold(s, name) {
			return nf, nil
		}
	}
	return Shortest, fmt.Errorf("unknown number format %q (want shortest or fixed2)", s)
}

func (nf NumberFormat) String() string {
	if name, ok := numberFormatNames[nf]; ok {
		return name
	}
	return fmt.Sprintf("NumberFormat(%d)", int(nf))
}

// MarshalText implements encoding.TextMarshaler.
func (nf NumberFormat) MarshalText() ([]byte, error) {
	return []byte(nf.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (nf *NumberFormat) UnmarshalText(text []byte) error {
	v, err := ParseNumberFormat(string(text))
	if err != nil {
		return err
	}
	*nf = v
	return nil
}

// Format renders f according to nf.
func (nf NumberFormat) Format(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	if nf == Fixed2 {
		s := strconv.FormatFloat(f, 'f', 2, 64)
		// Rounding may land on an integer, which keeps its ".0".
		if r, _ := strconv.ParseFloat(s, 64); r == math.Trunc(r) {
			if r == 0 {
				r = 0 // -0.001 rounds to zero, not negative zero
			}
			return strconv.FormatFloat(r, 'f', 1, 64)
		}
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
