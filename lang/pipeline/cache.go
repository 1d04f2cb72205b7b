// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package pipeline

import (
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/probechain/go-lox/lang/ast"
)

// Hash is the SHA3-256 digest of a source text.
type Hash [32]byte

// HashSource returns the content hash used for cache keys and change
// detection.
func HashSource(src []byte) Hash {
	return sha3.Sum256(src)
}

// String returns the full hex encoding of h.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// TerminalString abbreviates h in console log output.
func (h Hash) TerminalString() string {
	return hex.EncodeToString(h[:3]) + "…" + hex.EncodeToString(h[29:])
}

type cacheKey struct {
	hash Hash
	mode Mode
}

// Cache memoises successful parses, keyed by source hash and parse mode.
// Syntax trees are never mutated after parsing, so cached statements can be
// handed out repeatedly. A nil *Cache is valid and caches nothing.
type Cache struct {
	lru *lru.Cache
}

// NewCache creates a cache holding up to size programs. A size of zero or
// less disables caching and returns a nil Cache.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

func (c *Cache) get(h Hash, mode Mode) ([]ast.Stmt, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(cacheKey{h, mode})
	if !ok {
		return nil, false
	}
	return v.([]ast.Stmt), true
}

func (c *Cache) add(h Hash, mode Mode, stmts []ast.Stmt) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey{h, mode}, stmts)
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
