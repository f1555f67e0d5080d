package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laramoda/storefront-api/internal/model"
)

func product(name, desc, category, price string, active bool, created time.Time) model.Product {
	return model.Product{
		ID: uuid.New(), Name: name, Description: desc, Category: category,
		Price: decimal.RequireFromString(price), IsActive: active, CreatedAt: created,
	}
}

func fixture() []model.Product {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Product{
		product("Vestido Floral", "Vestido leve de verão", "feminino", "129.90", true, base),
		product("Camisa Linho", "Camisa masculina de linho", "masculino", "89.90", true, base.Add(time.Hour)),
		product("Conjunto Praia", "Top e saia estampados", "conjuntos", "159.00", false, base.Add(2*time.Hour)),
		product("Blusa Básica", "Algodão macio, corte reto", "feminino", "49.90", true, base.Add(3*time.Hour)),
		product("Colar Dourado", "Acessório banhado", "acessorios", "39.90", true, base.Add(4*time.Hour)),
		product("Saia Midi", "Saia plissada FLORAL", "feminino", "99.00", true, base.Add(5*time.Hour)),
	}
}

func names(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestApply_AllCategoryReturnsActiveSubset(t *testing.T) {
	products := fixture()
	got := Apply(products, Filter{Category: model.CategoryAll})

	var active int
	for _, p := range products {
		if p.IsActive {
			active++
		}
	}
	assert.Len(t, got, active)
	for _, p := range got {
		assert.True(t, p.IsActive)
	}
}

func TestApply_SearchIsCaseInsensitiveOnNameOrDescription(t *testing.T) {
	got := Apply(fixture(), Filter{Search: "floral"})
	assert.ElementsMatch(t, []string{"Vestido Floral", "Saia Midi"}, names(got))

	got = Apply(fixture(), Filter{Search: "LINHO"})
	assert.Equal(t, []string{"Camisa Linho"}, names(got))
}

func TestApply_CategoryFilter(t *testing.T) {
	got := Apply(fixture(), Filter{Category: "feminino", Sort: SortName})
	assert.Equal(t, []string{"Blusa Básica", "Saia Midi", "Vestido Floral"}, names(got))

	got = Apply(fixture(), Filter{Category: "conjuntos"})
	assert.Empty(t, got, "inactive products are never shown")
}

func TestApply_PriceSorts(t *testing.T) {
	asc := Apply(fixture(), Filter{Sort: SortPriceAsc})
	require.NotEmpty(t, asc)
	for i := 1; i < len(asc); i++ {
		assert.True(t, asc[i-1].Price.LessThanOrEqual(asc[i].Price))
	}

	desc := Apply(fixture(), Filter{Sort: SortPriceDesc})
	for i := 1; i < len(desc); i++ {
		assert.True(t, desc[i-1].Price.GreaterThanOrEqual(desc[i].Price))
	}
}

func TestApply_NewestFirst(t *testing.T) {
	got := Apply(fixture(), Filter{Sort: SortNewest})
	assert.Equal(t, "Saia Midi", got[0].Name)
	assert.Equal(t, "Vestido Floral", got[len(got)-1].Name)
}

func TestApply_StableOnTies(t *testing.T) {
	at := time.Now()
	products := []model.Product{
		product("B", "same price one", "feminino", "10", true, at),
		product("A", "same price two", "feminino", "10", true, at),
	}
	got := Apply(products, Filter{Sort: SortPriceAsc})
	assert.Equal(t, []string{"B", "A"}, names(got))
}

func TestApply_UnknownSortFallsBackToName(t *testing.T) {
	byName := Apply(fixture(), Filter{Sort: SortName})
	assert.Equal(t, []string{"Blusa Básica", "Camisa Linho", "Colar Dourado", "Saia Midi", "Vestido Floral"}, names(byName))
	assert.Equal(t, names(byName), names(Apply(fixture(), Filter{Sort: "popular"})))
	assert.Equal(t, names(byName), names(Apply(fixture(), Filter{})))
}

func TestValidSort(t *testing.T) {
	for _, key := range SortKeys {
		assert.True(t, ValidSort(key), key)
	}
	assert.False(t, ValidSort("popular"))
	assert.False(t, ValidSort(""))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := fixture()
	first := products[0].Name
	Apply(products, Filter{Sort: SortPriceAsc})
	assert.Equal(t, first, products[0].Name)
}

func TestRelated(t *testing.T) {
	at := time.Now()
	source := product("Vestido", "source product", "feminino", "10", true, at)
	all := []model.Product{source}
	for i := 0; i < 6; i++ {
		all = append(all, product("F", "related", "feminino", "10", true, at))
	}
	all = append(all, product("M", "other category", "masculino", "10", true, at))
	all[2].IsActive = false

	got := Related(&source, all, RelatedLimit)
	require.Len(t, got, RelatedLimit)
	for _, p := range got {
		assert.NotEqual(t, source.ID, p.ID)
		assert.Equal(t, "feminino", p.Category)
		assert.True(t, p.IsActive)
	}
	assert.Equal(t, all[1].ID, got[0].ID)
	assert.Equal(t, all[3].ID, got[1].ID)
}

func TestRelated_NilProduct(t *testing.T) {
	assert.Empty(t, Related(nil, fixture(), RelatedLimit))
}

func TestCategoryCounts(t *testing.T) {
	counts := CategoryCounts(fixture())
	require.Len(t, counts, len(model.Categories)+1)
	assert.Equal(t, CategoryCount{Category: model.CategoryAll, Count: 5}, counts[0])
	assert.Equal(t, CategoryCount{Category: "feminino", Count: 3}, counts[1])
	assert.Equal(t, CategoryCount{Category: "conjuntos", Count: 0}, counts[3])
}
