package inventory

import "testing"

func TestChunkSplitsAndMerges(t *testing.T) {
	ids := make([]string, 0, 205)
	for i := 0; i < 205; i++ {
		ids = append(ids, "id")
	}

	pages := chunk(ids, 100)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if len(pages[0]) != 100 || len(pages[1]) != 100 || len(pages[2]) != 5 {
		t.Fatalf("unexpected page sizes: %d %d %d", len(pages[0]), len(pages[1]), len(pages[2]))
	}
}

func TestChunkExactMultiple(t *testing.T) {
	pages := chunk([]string{"a", "b", "c", "d"}, 2)
	if len(pages) != 2 || len(pages[0]) != 2 || len(pages[1]) != 2 {
		t.Fatalf("unexpected pages: %v", pages)
	}
}

func TestChunkEmpty(t *testing.T) {
	if pages := chunk(nil, 100); pages != nil {
		t.Fatalf("expected nil pages, got %v", pages)
	}
}
