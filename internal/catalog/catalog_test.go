package catalog

import "testing"

func TestNew(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	list := c.List()
	if len(list) != 8 {
		t.Fatalf("expected 8 seed categories, got %d", len(list))
	}

	// The seed set is ordered and stable.
	if list[0].ID != "cat-1" || list[0].Slug != "water-supply" {
		t.Errorf("unexpected first category: %+v", list[0])
	}
	if list[7].Slug != "others" {
		t.Errorf("expected others last, got %+v", list[7])
	}

	for _, cat := range list {
		if cat.ID == "" || cat.Name == "" || cat.Slug == "" {
			t.Errorf("incomplete category in seed: %+v", cat)
		}
	}
}

func TestLookups(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	byID, ok := c.ByID("cat-3")
	if !ok {
		t.Fatal("ByID(cat-3) missed")
	}
	bySlug, ok := c.BySlug(byID.Slug)
	if !ok || bySlug.ID != "cat-3" {
		t.Errorf("slug lookup disagrees with id lookup: %+v", bySlug)
	}

	if _, ok := c.ByID("cat-99"); ok {
		t.Error("ByID must miss on unknown id")
	}
	if _, ok := c.BySlug("nonexistent"); ok {
		t.Error("BySlug must miss on unknown slug")
	}
}

func TestListReturnsCopy(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	list := c.List()
	list[0].Name = "mutated"

	fresh, _ := c.ByID(list[0].ID)
	if fresh.Name == "mutated" {
		t.Error("List must return a copy, not the backing slice")
	}
}
