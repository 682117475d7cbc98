// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package query

import "strings"

// Fragment is a boolean SQL condition template and the values it binds.
// The template refers to its own values as {0}, {1}, ... and may mention the
// same marker more than once; Assemble rewrites the markers into positional
// placeholders.
type Fragment struct {
	Template string
	Values   []any
}

// Predicates holds the conditions for one listing, in the order they were
// appended. Where applies to raw item rows; Having applies after the join
// against the tag tables and the group-by on the item.
type Predicates struct {
	Where  []Fragment
	Having []Fragment
}

// categoryNames is the aggregated, null-free list of tag names for one
// grouped item. It appears in the projection and in HAVING conditions.
const categoryNames = `array_remove(array_agg(c.name), NULL)`

var (
	alwaysTrue = Fragment{Template: "true"}

	notArchived = Fragment{Template: "i.archived = false"}

	uncategorized = Fragment{Template: "cardinality(" + categoryNames + ") = 0"}
)

// searchTemplate matches one term against every searchable column and every
// tag name joined to the item.
const searchTemplate = `(i.id ILIKE {0}` +
	` OR i.screen_name ILIKE {0}` +
	` OR i.full_text ILIKE {0}` +
	` OR i.quoted_text ILIKE {0}` +
	` OR COALESCE(bool_or(c.name ILIKE {0}), false))`

// Build compiles a request into ordered predicate fragments. It never fails;
// odd input yields conditions that match everything or nothing.
func Build(req Request) Predicates {
	p := Predicates{
		Where:  []Fragment{alwaysTrue},
		Having: []Fragment{alwaysTrue},
	}

	if req.HideArchived {
		p.Where = append(p.Where, notArchived)
	}

	if req.HideCategorized {
		p.Having = append(p.Having, uncategorized)
	}

	for _, term := range req.Terms {
		p.Having = append(p.Having, searchTerm(term))
	}

	return p
}

// likeEscaper quotes the pattern metacharacters of ILIKE so a term matches
// as a literal substring. Backslash is the default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchTerm returns the HAVING fragment for one whitespace-delimited term.
func searchTerm(term string) Fragment {
	return Fragment{
		Template: searchTemplate,
		Values:   []any{"%" + likeEscaper.Replace(term) + "%"},
	}
}
