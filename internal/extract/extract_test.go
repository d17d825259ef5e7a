package extract

import "testing"

func TestItems_BasicLines(t *testing.T) {
	items, skipped := Items("Milk 50.0\nCurd 30")

	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Name != "Milk" || items[0].Price != 50.0 {
		t.Errorf("items[0] = %+v, want {Milk 50}", items[0])
	}
	if items[1].Name != "Curd" || items[1].Price != 30.0 {
		t.Errorf("items[1] = %+v, want {Curd 30}", items[1])
	}
}

func TestItems_SkipsUnparseableLines(t *testing.T) {
	testCases := []struct {
		name        string
		text        string
		wantItems   int
		wantSkipped int
	}{
		{"single token", "Milk", 0, 1},
		{"non-numeric price", "Milk fifty", 0, 1},
		{"blank lines ignored", "\n\nMilk 50\n\n", 1, 0},
		{"header then items", "Item Qty Price\nMilk 2 50.0\nTotal", 1, 2},
		{"trailing whitespace", "Milk 50.0   ", 1, 0},
	}

	for _, tc := range testCases {
		items, skipped := Items(tc.text)
		if len(items) != tc.wantItems {
			t.Errorf("%s: len(items) = %d, want %d", tc.name, len(items), tc.wantItems)
		}
		if skipped != tc.wantSkipped {
			t.Errorf("%s: skipped = %d, want %d", tc.name, skipped, tc.wantSkipped)
		}
	}
}

func TestItems_LastTokenIsPrice(t *testing.T) {
	// A quantity column is swallowed: last token wins as the price.
	items, _ := Items("Milk 2 55.5")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Name != "Milk" || items[0].Price != 55.5 {
		t.Errorf("items[0] = %+v, want {Milk 55.5}", items[0])
	}
}

func TestItems_Restartable(t *testing.T) {
	text := "Milk 50\nCurd 30"
	first, _ := Items(text)
	second, _ := Items(text)
	if len(first) != len(second) {
		t.Fatalf("second pass returned %d items, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pass mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
