package records

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

type fakeSource struct {
	byCode map[int64][]eppi.Record
	pages  map[int][]eppi.Record
	total  int64

	byCodeCalls    int
	firstPageCalls int
	pageCalls      int

	err error
}

func (s *fakeSource) ListByCode(_ context.Context, attributeID, _ int64) ([]eppi.Record, error) {
	s.byCodeCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byCode[attributeID], nil
}

func (s *fakeSource) ListFirstPage(context.Context, []int64, []int64) ([]eppi.Record, int64, error) {
	s.firstPageCalls++
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.pages[0], s.total, nil
}

func (s *fakeSource) ListPage(_ context.Context, pageNumber int, _ string, _, _ []int64) ([]eppi.Record, error) {
	s.pageCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[pageNumber], nil
}

func recs(ids ...int64) []eppi.Record {
	records := make([]eppi.Record, len(ids))
	for i, id := range ids {
		records[i] = eppi.Record{ItemID: id, Title: fmt.Sprintf("record %d", id)}
	}
	return records
}

func ids(records []eppi.Record) []int64 {
	out := make([]int64, len(records))
	for i, rec := range records {
		out[i] = rec.ItemID
	}
	return out
}

func attrs(pairs ...int64) []taxonomy.Attribute {
	attributes := make([]taxonomy.Attribute, len(pairs))
	for i, id := range pairs {
		attributes[i] = taxonomy.Attribute{ID: id, SetID: 1}
	}
	return attributes
}

func newTestRetriever(t *testing.T, source Source) *Retriever {
	t.Helper()
	r, err := NewRetriever(source, 16)
	if err != nil {
		t.Fatalf("NewRetriever returned error: %v", err)
	}
	return r
}

func TestByAttributesOrDeduplicates(t *testing.T) {
	t.Parallel()

	source := &fakeSource{byCode: map[int64][]eppi.Record{
		1: recs(100, 101, 102),
		2: recs(102, 103),
	}}
	r := newTestRetriever(t, source)

	merged, counts, err := r.ByAttributesOr(context.Background(), attrs(1, 2))
	if err != nil {
		t.Fatalf("ByAttributesOr returned error: %v", err)
	}

	// 102 appears in both batches; the first occurrence wins.
	want := []int64{100, 101, 102, 103}
	if !reflect.DeepEqual(ids(merged), want) {
		t.Fatalf("merged ids = %v, want %v", ids(merged), want)
	}
	// Counts are the raw per-attribute sizes, before deduplication.
	if !reflect.DeepEqual(counts, []int{3, 2}) {
		t.Fatalf("counts = %v, want [3 2]", counts)
	}
}

func TestByAttributesOrKeepsFirstOccurrenceFields(t *testing.T) {
	t.Parallel()

	source := &fakeSource{byCode: map[int64][]eppi.Record{
		1: {{ItemID: 100, Title: "first"}},
		2: {{ItemID: 100, Title: "second"}},
	}}
	r := newTestRetriever(t, source)

	merged, _, err := r.ByAttributesOr(context.Background(), attrs(1, 2))
	if err != nil {
		t.Fatalf("ByAttributesOr returned error: %v", err)
	}
	if len(merged) != 1 || merged[0].Title != "first" {
		t.Fatalf("merged = %+v, want the first occurrence's fields", merged)
	}
}

func TestByAttributesOrEmptyInput(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	r := newTestRetriever(t, source)

	merged, counts, err := r.ByAttributesOr(context.Background(), nil)
	if err != nil {
		t.Fatalf("ByAttributesOr returned error: %v", err)
	}
	if len(merged) != 0 || len(counts) != 0 {
		t.Fatalf("merged = %v, counts = %v, want empty", merged, counts)
	}
	if source.byCodeCalls != 0 {
		t.Fatalf("byCodeCalls = %d, want no fetch for empty input", source.byCodeCalls)
	}
}

func TestByAttributesOrPropagatesError(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: errors.New("boom")}
	r := newTestRetriever(t, source)

	if _, _, err := r.ByAttributesOr(context.Background(), attrs(1)); err == nil {
		t.Fatal("ByAttributesOr did not propagate the fetch error")
	}
}

func TestFirstPageMemoized(t *testing.T) {
	t.Parallel()

	source := &fakeSource{pages: map[int][]eppi.Record{0: recs(100)}, total: 1}
	r := newTestRetriever(t, source)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		page, total, err := r.FirstPage(ctx, []int64{1}, []int64{5})
		if err != nil {
			t.Fatalf("FirstPage returned error: %v", err)
		}
		if total != 1 || len(page) != 1 {
			t.Fatalf("FirstPage = %d records, total %d, want 1 and 1", len(page), total)
		}
	}
	if source.firstPageCalls != 1 {
		t.Fatalf("firstPageCalls = %d, want repeated calls memoized", source.firstPageCalls)
	}

	// A different argument tuple is a different cache entry.
	if _, _, err := r.FirstPage(ctx, []int64{2}, []int64{5}); err != nil {
		t.Fatalf("FirstPage returned error: %v", err)
	}
	if source.firstPageCalls != 2 {
		t.Fatalf("firstPageCalls = %d, want 2", source.firstPageCalls)
	}
}

func TestAllPagesWalksFollowUpPages(t *testing.T) {
	t.Parallel()

	// 250 records at page size 100: first page plus follow-up pages 1 and 2.
	source := &fakeSource{
		pages: map[int][]eppi.Record{
			0: recs(1, 2),
			1: recs(3, 4),
			2: recs(5),
		},
		total: 250,
	}
	r := newTestRetriever(t, source)

	all, total, err := r.AllPages(context.Background(), "`A` [AND] `B`", []int64{1, 2}, []int64{5, 5})
	if err != nil {
		t.Fatalf("AllPages returned error: %v", err)
	}
	if total != 250 {
		t.Fatalf("total = %d, want 250", total)
	}
	if !reflect.DeepEqual(ids(all), []int64{1, 2, 3, 4, 5}) {
		t.Fatalf("all ids = %v, want pages concatenated in order", ids(all))
	}
	if source.firstPageCalls != 1 || source.pageCalls != 2 {
		t.Fatalf("calls = first %d, pages %d, want 1 and 2", source.firstPageCalls, source.pageCalls)
	}
}

func TestAllPagesSinglePage(t *testing.T) {
	t.Parallel()

	source := &fakeSource{pages: map[int][]eppi.Record{0: recs(1, 2)}, total: 2}
	r := newTestRetriever(t, source)

	all, _, err := r.AllPages(context.Background(), "`A`", []int64{1}, []int64{5})
	if err != nil {
		t.Fatalf("AllPages returned error: %v", err)
	}
	if len(all) != 2 || source.pageCalls != 0 {
		t.Fatalf("got %d records, %d page calls, want no follow-up fetches", len(all), source.pageCalls)
	}
}
