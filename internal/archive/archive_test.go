package archive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tweetarchive/internal/models"
	"tweetarchive/internal/query"
)

// fakeItems records calls and returns canned results.
type fakeItems struct {
	calls   []string
	listed  query.Statement
	items   []models.Item
	summary *models.Summary
	failOn  string
	err     error
}

func (f *fakeItems) fail(op string) error {
	if op == f.failOn {
		return f.err
	}
	return nil
}

func (f *fakeItems) List(_ context.Context, q query.Statement) ([]models.Item, error) {
	f.calls = append(f.calls, "list")
	f.listed = q
	if err := f.fail("list"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeItems) SetImportant(_ context.Context, id string, v bool) error {
	f.calls = append(f.calls, "important:"+id)
	return f.fail("important")
}

func (f *fakeItems) SetArchived(_ context.Context, id string, v bool) error {
	f.calls = append(f.calls, "archived:"+id)
	return f.fail("archived")
}

func (f *fakeItems) Summary(_ context.Context) (*models.Summary, error) {
	f.calls = append(f.calls, "summary")
	if err := f.fail("summary"); err != nil {
		return nil, err
	}
	return f.summary, nil
}

// fakeCategories shares the call log with fakeItems so ordering across
// both repositories can be asserted.
type fakeCategories struct {
	log    *[]string
	names  []string
	failOn string
	err    error
}

func (f *fakeCategories) Add(_ context.Context, id, name string) error {
	*f.log = append(*f.log, "add:"+id+":"+name)
	if f.failOn == "add" {
		return f.err
	}
	return nil
}

func (f *fakeCategories) Remove(_ context.Context, id, name string) error {
	*f.log = append(*f.log, "remove:"+id+":"+name)
	if f.failOn == "remove" {
		return f.err
	}
	return nil
}

func (f *fakeCategories) Names(_ context.Context) ([]string, error) {
	*f.log = append(*f.log, "names")
	if f.failOn == "names" {
		return nil, f.err
	}
	return f.names, nil
}

func newTestService() (*Service, *fakeItems, *fakeCategories) {
	items := &fakeItems{}
	cats := &fakeCategories{log: &items.calls}
	return New(items, cats), items, cats
}

func ptr[T any](v T) *T { return &v }

func TestPatchItemEmptyPatch(t *testing.T) {
	svc, items, _ := newTestService()

	err := svc.PatchItem(context.Background(), "42", Patch{})
	if !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("got %v, want ErrInvalidPatch", err)
	}
	if len(items.calls) != 0 {
		t.Errorf("empty patch touched the store: %v", items.calls)
	}
}

func TestPatchItemSingleFields(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  string
	}{
		{"add category", Patch{AddCategory: ptr("news")}, "add:42:news"},
		{"remove category", Patch{RemoveCategory: ptr("news")}, "remove:42:news"},
		{"important", Patch{Important: ptr(true)}, "important:42"},
		{"archived", Patch{Archived: ptr(false)}, "archived:42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, items, _ := newTestService()
			if err := svc.PatchItem(context.Background(), "42", tt.patch); err != nil {
				t.Fatalf("PatchItem: %v", err)
			}
			if len(items.calls) != 1 || items.calls[0] != tt.want {
				t.Errorf("calls: got %v, want [%s]", items.calls, tt.want)
			}
		})
	}
}

func TestPatchItemAllFieldsInOrder(t *testing.T) {
	svc, items, _ := newTestService()

	err := svc.PatchItem(context.Background(), "7", Patch{
		AddCategory:    ptr("a"),
		RemoveCategory: ptr("b"),
		Important:      ptr(true),
		Archived:       ptr(true),
	})
	if err != nil {
		t.Fatalf("PatchItem: %v", err)
	}

	want := "add:7:a,remove:7:b,important:7,archived:7"
	if got := strings.Join(items.calls, ","); got != want {
		t.Errorf("calls: got %s, want %s", got, want)
	}
}

func TestPatchItemStopsAtFirstFailure(t *testing.T) {
	svc, items, cats := newTestService()
	boom := errors.New("constraint violation")
	cats.failOn = "remove"
	cats.err = boom

	err := svc.PatchItem(context.Background(), "7", Patch{
		AddCategory:    ptr("a"),
		RemoveCategory: ptr("b"),
		Important:      ptr(true),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
	if !strings.Contains(err.Error(), "remove_category") {
		t.Errorf("error should name the failing field: %v", err)
	}

	want := "add:7:a,remove:7:b"
	if got := strings.Join(items.calls, ","); got != want {
		t.Errorf("calls: got %s, want %s (important must not run)", got, want)
	}
}

func TestListItemsBuildsStatement(t *testing.T) {
	svc, items, _ := newTestService()
	items.items = []models.Item{{ID: "1"}}

	got, err := svc.ListItems(context.Background(), query.Params{
		PageSize:   ptr(int64(20)),
		PageNumber: ptr(int64(3)),
		Search:     ptr("foo"),
	})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("items: got %d, want 1", len(got))
	}
	if len(items.listed.Args) != 3 {
		t.Fatalf("args: got %v", items.listed.Args)
	}
	if items.listed.Args[0] != int64(20) || items.listed.Args[1] != int64(40) {
		t.Errorf("pagination args: got %v", items.listed.Args[:2])
	}
}

func TestListItemsError(t *testing.T) {
	svc, items, _ := newTestService()
	items.failOn = "list"
	items.err = errors.New("down")

	if _, err := svc.ListItems(context.Background(), query.Params{}); !errors.Is(err, items.err) {
		t.Errorf("got %v, want wrapped error", err)
	}
}

func TestListCategories(t *testing.T) {
	svc, _, cats := newTestService()
	cats.names = []string{"common", "rare"}

	got, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if strings.Join(got, ",") != "common,rare" {
		t.Errorf("got %v", got)
	}
}

func TestGetSummary(t *testing.T) {
	svc, items, _ := newTestService()

	s, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if s != nil {
		t.Errorf("no row: got %+v, want nil", s)
	}

	items.summary = &models.Summary{Total: 3, Categorized: 1, Uncategorized: 2}
	s, err = svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if s.Total != 3 || s.Uncategorized != 2 {
		t.Errorf("got %+v", s)
	}
}
