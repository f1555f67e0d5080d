// Package catalog holds the storefront's browsing rules: which products are
// shown for a given search/category/sort state and which ones are related.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/laramoda/storefront-api/internal/model"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
)

// RelatedLimit caps the related products shown on a detail page.
const RelatedLimit = 4

// Filter is the browsing state of one catalog view.
type Filter struct {
	Search   string
	Category string
	Sort     SortKey
}

func (f Filter) normalized() Filter {
	if f.Category == "" {
		f.Category = model.CategoryAll
	}
	if !ValidSort(f.Sort) {
		f.Sort = SortName
	}
	return f
}

// Matches reports whether p is active and satisfies the search and category.
func (f Filter) Matches(p *model.Product) bool {
	if !p.IsActive {
		return false
	}
	f = f.normalized()
	if f.Category != model.CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Apply returns the products matching f, sorted by f.Sort. The input slice is
// not modified. An empty or unknown sort key sorts by name.
func Apply(products []model.Product, f Filter) []model.Product {
	f = f.normalized()

	out := make([]model.Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			out = append(out, products[i])
		}
	}

	slices.SortStableFunc(out, comparator(f.Sort))
	return out
}

func comparator(key SortKey) func(a, b model.Product) int {
	switch key {
	case SortPriceAsc:
		return func(a, b model.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b model.Product) int { return b.Price.Cmp(a.Price) }
	case SortNewest:
		return func(a, b model.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	// Collators keep internal buffers, so each sort gets its own.
	c := collate.New(language.BrazilianPortuguese)
	return func(a, b model.Product) int { return c.CompareString(a.Name, b.Name) }
}

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortName, SortPriceAsc, SortPriceDesc, SortNewest}

func ValidSort(key SortKey) bool {
	return slices.Contains(SortKeys, key)
}

// Related returns up to limit active products sharing p's category, excluding
// p itself, in the order they appear in all.
func Related(p *model.Product, all []model.Product, limit int) []model.Product {
	related := make([]model.Product, 0, limit)
	if p == nil || limit <= 0 {
		return related
	}
	for _, candidate := range all {
		if len(related) == limit {
			break
		}
		if candidate.ID == p.ID || !candidate.IsActive || candidate.Category != p.Category {
			continue
		}
		related = append(related, candidate)
	}
	return related
}

type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts counts active products per category, starting with "all".
func CategoryCounts(products []model.Product) []CategoryCount {
	counts := make(map[string]int, len(model.Categories))
	active := 0
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		active++
		counts[p.Category]++
	}

	out := make([]CategoryCount, 0, len(model.Categories)+1)
	out = append(out, CategoryCount{Category: model.CategoryAll, Count: active})
	for _, c := range model.Categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}
