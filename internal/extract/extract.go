// Package extract turns raw document text into (item, price) pairs.
//
// The tokenization is deliberately naive and matches the upload documents in
// the field: the first whitespace token of a line is the item name, the last
// token is the price. Lines that do not fit are skipped, not reported as
// errors, so a quantity column in the last position will be misparsed as a
// price. Callers get a skipped-line count for diagnostics.
package extract

import (
	"strconv"
	"strings"
)

// Item is one extracted line item.
type Item struct {
	Name  string  `json:"item"`
	Price float64 `json:"price"`
}

// Items parses raw multi-line text in document order. It returns the
// qualifying line items and the number of non-empty lines that were skipped
// because they had fewer than two tokens or a non-numeric last token.
func Items(text string) ([]Item, int) {
	var items []Item
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			if len(parts) > 0 {
				skipped++
			}
			continue
		}
		price, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, Item{Name: parts[0], Price: price})
	}

	return items, skipped
}
