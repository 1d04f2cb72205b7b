// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned by Decode for sources that are neither UTF-8
// nor BOM-marked UTF-16.
var ErrInvalidUTF8 = errors.New("pipeline: source is not valid UTF-8")

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode returns src as BOM-free UTF-8. A UTF-8 byte order mark is stripped
// and BOM-marked UTF-16 is transcoded. Anything else must already be valid
// UTF-8.
func Decode(src []byte) ([]byte, error) {
	utf16 := bytes.HasPrefix(src, bomUTF16BE) || bytes.HasPrefix(src, bomUTF16LE)
	if !utf16 && !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUTF8, err)
	}
	return out, nil
}
