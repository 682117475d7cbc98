package store

import (
	"context"
	"testing"
	"time"

	"tweetarchive/internal/models"
	"tweetarchive/internal/query"
)

func ptr[T any](v T) *T { return &v }

func ids(items []models.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sameIDs(got []models.Item, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestItemStoreDefaultListing(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	cats := NewCategoryStore(db)
	ctx := context.Background()

	insertItems(t, db,
		testItem{id: "A"},
		testItem{id: "B", archived: true},
		testItem{id: "C"},
	)
	if err := cats.Add(ctx, "C", "x"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := items.List(ctx, query.ListStatement(query.Params{}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameIDs(got, "A") {
		t.Errorf("default listing: got %v, want [A]", ids(got))
	}
	if got[0].Categories == nil || len(got[0].Categories) != 0 {
		t.Errorf("categories: got %#v, want empty slice", got[0].Categories)
	}
}

func TestItemStoreListShowsEverything(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	cats := NewCategoryStore(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	insertItems(t, db,
		testItem{id: "A", createdAt: base},
		testItem{id: "B", createdAt: base.Add(time.Hour), archived: true},
		testItem{id: "C", createdAt: base.Add(2 * time.Hour)},
	)
	addCategory(t, cats, "C", "x")
	addCategory(t, cats, "C", "y")

	got, err := items.List(ctx, query.ListStatement(query.Params{
		HideArchived:    ptr(false),
		HideCategorized: ptr(false),
	}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameIDs(got, "C", "B", "A") {
		t.Fatalf("order: got %v, want newest first [C B A]", ids(got))
	}
	if len(got[0].Categories) != 2 {
		t.Errorf("C categories: got %v, want two", got[0].Categories)
	}
	if !got[1].Archived {
		t.Error("B should be archived")
	}
}

func TestItemStoreListPagination(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		insertItems(t, db, testItem{id: id, createdAt: base.Add(-time.Duration(i) * time.Minute)})
	}

	got, err := items.List(ctx, query.ListStatement(query.Params{
		PageSize:   ptr(int64(2)),
		PageNumber: ptr(int64(2)),
	}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameIDs(got, "p3", "p4") {
		t.Errorf("page 2: got %v, want [p3 p4]", ids(got))
	}

	got, err = items.List(ctx, query.ListStatement(query.Params{
		PageSize:   ptr(int64(2)),
		PageNumber: ptr(int64(4)),
	}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("past the end: got %v, want none", ids(got))
	}
}

func TestItemStoreListSearch(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	cats := NewCategoryStore(db)
	ctx := context.Background()

	insertItems(t, db,
		testItem{id: "both", fullText: "FOO and bar"},
		testItem{id: "foo-only", fullText: "just foo"},
		testItem{id: "split", screenName: "foo_fan", quotedText: "quoted BAR"},
		testItem{id: "tagged", fullText: "foo"},
		testItem{id: "neither", fullText: "nothing"},
	)
	if err := cats.Add(ctx, "tagged", "Barstool"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := items.List(ctx, query.ListStatement(query.Params{
		HideCategorized: ptr(false),
		Search:          ptr("foo bar"),
	}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := map[string]bool{"both": true, "split": true, "tagged": true}
	if len(got) != len(want) {
		t.Fatalf("search: got %v, want %d items", ids(got), len(want))
	}
	for _, it := range got {
		if !want[it.ID] {
			t.Errorf("unexpected match %q", it.ID)
		}
	}
}

func TestItemStoreListSearchByID(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	ctx := context.Background()

	insertItems(t, db, testItem{id: "1234567"}, testItem{id: "7654321"})

	got, err := items.List(ctx, query.ListStatement(query.Params{Search: ptr("456")}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameIDs(got, "1234567") {
		t.Errorf("got %v, want [1234567]", ids(got))
	}
}

func TestItemStoreListSearchLiteralWildcards(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	ctx := context.Background()

	insertItems(t, db,
		testItem{id: "literal", fullText: "today only: 50%_off everything"},
		testItem{id: "lookalike", fullText: "50Xoff is not a discount"},
	)

	got, err := items.List(ctx, query.ListStatement(query.Params{Search: ptr("50%_off")}))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !sameIDs(got, "literal") {
		t.Errorf("got %v, want [literal]", ids(got))
	}
}

func TestItemStoreSetFlags(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	ctx := context.Background()

	insertItems(t, db, testItem{id: "f1"})

	if err := items.SetImportant(ctx, "f1", true); err != nil {
		t.Fatalf("SetImportant: %v", err)
	}
	if err := items.SetArchived(ctx, "f1", true); err != nil {
		t.Fatalf("SetArchived: %v", err)
	}

	var important, archived bool
	if err := db.QueryRow("SELECT important, archived FROM items WHERE id = 'f1'").Scan(&important, &archived); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !important || !archived {
		t.Errorf("flags: important=%v archived=%v, want both true", important, archived)
	}

	if err := items.SetArchived(ctx, "f1", false); err != nil {
		t.Fatalf("SetArchived(false): %v", err)
	}
	db.QueryRow("SELECT archived FROM items WHERE id = 'f1'").Scan(&archived)
	if archived {
		t.Error("archived should be false after unset")
	}

	// Unknown ids are not an error.
	if err := items.SetImportant(ctx, "missing", true); err != nil {
		t.Errorf("SetImportant(missing): %v", err)
	}
}

func TestItemStoreSummaryEmpty(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)

	s, err := items.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s == nil {
		t.Fatal("expected a summary row")
	}
	if *s != (models.Summary{}) {
		t.Errorf("empty store: got %+v, want all zero", *s)
	}
}

func TestItemStoreSummary(t *testing.T) {
	db := testDB(t)
	items := NewItemStore(db)
	cats := NewCategoryStore(db)
	ctx := context.Background()

	insertItems(t, db,
		testItem{id: "s1", important: true},
		testItem{id: "s2", archived: true},
		testItem{id: "s3", archived: true, important: true},
		testItem{id: "s4"},
	)
	addCategory(t, cats, "s1", "a")
	addCategory(t, cats, "s1", "b")
	addCategory(t, cats, "s2", "a")

	s, err := items.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := models.Summary{Total: 4, Categorized: 2, Uncategorized: 2, Archived: 2, Important: 2}
	if *s != want {
		t.Errorf("summary: got %+v, want %+v", *s, want)
	}
}
