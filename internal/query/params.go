// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

// Package query turns the optional listing parameters of a request into a
// single parameterized SQL statement. Normalize fills in defaults, Build
// compiles the request into WHERE and HAVING fragments, and Assemble renders
// the final statement text together with its positional arguments.
package query

import (
	"math/big"
	"strings"
)

// Listing defaults applied when a parameter is absent.
const (
	DefaultPageSize   int64 = 10
	DefaultPageNumber int64 = 1
)

// Params is the raw listing input. A nil field means the client did not
// send it.
type Params struct {
	PageSize        *int64
	PageNumber      *int64
	HideArchived    *bool
	HideCategorized *bool
	Search          *string
}

// Request is the canonical, defaulted form of Params consumed by Build.
// It is passed by value and never modified after Normalize returns it.
type Request struct {
	PageSize        int64
	PageNumber      int64
	HideArchived    bool
	HideCategorized bool
	Terms           []string
}

// Normalize applies defaults and splits the search text into terms.
// Page values are not range-checked.
func Normalize(p Params) Request {
	req := Request{
		PageSize:        DefaultPageSize,
		PageNumber:      DefaultPageNumber,
		HideArchived:    true,
		HideCategorized: true,
	}
	if p.PageSize != nil {
		req.PageSize = *p.PageSize
	}
	if p.PageNumber != nil {
		req.PageNumber = *p.PageNumber
	}
	if p.HideArchived != nil {
		req.HideArchived = *p.HideArchived
	}
	if p.HideCategorized != nil {
		req.HideCategorized = *p.HideCategorized
	}
	if p.Search != nil {
		req.Terms = strings.Fields(*p.Search)
	}
	return req
}

// Limit returns the LIMIT value for the request.
func (r Request) Limit() int64 {
	return r.PageSize
}

// Offset returns the number of rows to skip: (page_number - 1) * page_size.
func (r Request) Offset() int64 {
	return (r.PageNumber - 1) * r.PageSize
}

// OffsetOverflows reports whether (page_number - 1) * page_size does not
// fit in an int64, in which case Offset wraps.
func (r Request) OffsetOverflows() bool {
	off := new(big.Int).Sub(big.NewInt(r.PageNumber), big.NewInt(1))
	off.Mul(off, big.NewInt(r.PageSize))
	return !off.IsInt64()
}
