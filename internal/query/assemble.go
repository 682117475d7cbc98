// Copyright (c) 2026 The tweetarchive authors.
// All rights reserved. See LICENSE for details.

package query

import (
	"strconv"
	"strings"
)

// Statement is executable SQL text with its positional arguments.
// Args[n-1] is bound to $n.
type Statement struct {
	SQL  string
	Args []any
}

// Columns is the projection of every listing statement, in scan order.
const Columns = `i.id, i.sort_index, i.screen_name, i.created_at, i.fetched_at,
	       i.full_text, i.quoted_text, i.bookmarked, i.liked, i.important, i.archived,
	       ` + categoryNames + ` AS categories`

// binder hands out placeholder positions. Pagination always takes $1 and $2;
// predicate values follow in the order they are first seen, and a value seen
// again reuses its existing position.
type binder struct {
	args      []any
	positions map[any]int
}

func newBinder(limit, offset int64) *binder {
	return &binder{
		args:      []any{limit, offset},
		positions: make(map[any]int),
	}
}

// bind returns the 1-based placeholder position for v.
func (b *binder) bind(v any) int {
	if pos, ok := b.positions[v]; ok {
		return pos
	}
	b.args = append(b.args, v)
	pos := len(b.args)
	b.positions[v] = pos
	return pos
}

// render rewrites a fragment's {i} markers into $n placeholders.
func (b *binder) render(f Fragment) string {
	if len(f.Values) == 0 {
		return f.Template
	}
	pairs := make([]string, 0, 2*len(f.Values))
	for i, v := range f.Values {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", "$"+strconv.Itoa(b.bind(v)))
	}
	return strings.NewReplacer(pairs...).Replace(f.Template)
}

// renderAll renders fragments in order and AND-joins them.
func (b *binder) renderAll(fs []Fragment) string {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, b.render(f))
	}
	return strings.Join(parts, " AND ")
}

// Assemble combines the predicates with the fixed projection, join, group-by,
// ordering and pagination into a single statement. It only builds text and
// arguments; nothing is executed.
func Assemble(req Request, p Predicates) Statement {
	b := newBinder(req.Limit(), req.Offset())

	where := b.renderAll(p.Where)
	having := b.renderAll(p.Having)

	sql := `
		SELECT ` + Columns + `
		FROM items i
		LEFT JOIN item_categories ic ON ic.item_id = i.id
		LEFT JOIN categories c ON c.id = ic.category_id
		WHERE ` + where + `
		GROUP BY i.id, i.sort_index, i.fetched_at
		HAVING ` + having + `
		ORDER BY i.created_at DESC, i.sort_index DESC
		LIMIT $1 OFFSET $2`

	return Statement{SQL: sql, Args: b.args}
}

// ListStatement runs the whole pipeline for a set of raw parameters.
func ListStatement(p Params) Statement {
	req := Normalize(p)
	return Assemble(req, Build(req))
}
