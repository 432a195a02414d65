package product

import "testing"

func seedRepo() *InMemoryRepository {
	return NewInMemoryRepository([]Product{
		{ID: "a", Name: "Mixed Vegetable Pickle", Description: "cauliflower and carrot", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "b", Name: "Aged Garlic Pickle", Description: "seven year garlic", CreatedAt: "2026-01-02T00:00:00Z"},
		{ID: "c", Name: "Cucumber Pickle", Description: "brined with dill", CreatedAt: "2026-01-03T00:00:00Z"},
	})
}

func TestSearch_EmptyQueryYieldsNothing(t *testing.T) {
	s := NewService(seedRepo())
	got, err := s.Search("")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// documented storefront behavior: no query means no results, not the
	// full catalog
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty query, got %d products", len(got))
	}
}

func TestSearch_MatchesNameAndDescription(t *testing.T) {
	s := NewService(seedRepo())

	byName, err := s.Search("Garlic")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != "b" {
		t.Fatalf("expected product b by name, got %+v", byName)
	}

	byDesc, err := s.Search("dill")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byDesc) != 1 || byDesc[0].ID != "c" {
		t.Fatalf("expected product c by description, got %+v", byDesc)
	}

	// the match is case-sensitive as implemented
	if got, _ := s.Search("garlic pickle"); len(got) != 0 {
		t.Fatalf("expected case-sensitive search to miss, got %+v", got)
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := NewService(seedRepo())
	all, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}
	if all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("expected newest-first ordering, got %s..%s", all[0].ID, all[2].ID)
	}
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))
	created, err := s.Create(Product{Name: "Olive Pickle", Description: "green olives", Price: 100, Weight: "400 g", Image: "/images/olive.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt == "" {
		t.Fatalf("expected created_at to be set")
	}
}
