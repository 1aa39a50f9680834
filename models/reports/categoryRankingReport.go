package reports

import (
	"sort"

	"github.com/goodlandcafe/pos_backend/models"
)

type RankedItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Category   models.Category `json:"category"`
	Count      int             `json:"count"`
}

// CategoryRanking totals the quantity sold per menu item of one category,
// highest first. Equal totals are ordered by name.
func CategoryRanking(history []models.Transaction, category models.Category) []RankedItem {
	totals := make(map[string]*RankedItem)
	for _, txn := range history {
		for _, line := range txn.Lines {
			if line.MenuItem.Category != category || line.Quantity <= 0 {
				continue
			}
			r, ok := totals[line.MenuItem.ID]
			if !ok {
				r = &RankedItem{MenuItemID: line.MenuItem.ID, Category: category}
				totals[line.MenuItem.ID] = r
			}
			// latest snapshot wins so renamed dishes show their current name
			r.Name = line.MenuItem.Name
			r.Count += line.Quantity
		}
	}

	ranked := make([]RankedItem, 0, len(totals))
	for _, r := range totals {
		ranked = append(ranked, *r)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Name != ranked[j].Name {
			return ranked[i].Name < ranked[j].Name
		}
		return ranked[i].MenuItemID < ranked[j].MenuItemID
	})
	return ranked
}

func TopN(ranked []RankedItem, n int) []RankedItem {
	if n < 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}
