package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
)

func sampleCatalog() []model.Product {
	p := func(name, desc, price, category string, colors, sizes []string, stock int) model.Product {
		return model.Product{
			Name: name, Description: desc, Price: decimal.RequireFromString(price),
			Category: category, Images: []string{"/uploads/sample/placeholder.jpg"},
			Colors: colors, Sizes: sizes, Stock: stock, IsActive: true,
		}
	}
	return []model.Product{
		p("Vestido Floral Midi", "Vestido midi em viscose com estampa floral.", "189.90", "feminino",
			[]string{"Azul", "Rosa"}, []string{"P", "M", "G"}, 12),
		p("Blusa de Linho", "Blusa leve de linho com botões frontais.", "119.90", "feminino",
			[]string{"Branco", "Bege"}, []string{"P", "M", "G", "GG"}, 20),
		p("Camisa Oxford", "Camisa masculina em algodão oxford.", "149.90", "masculino",
			[]string{"Azul", "Branco"}, []string{"M", "G", "GG"}, 15),
		p("Bermuda Sarja", "Bermuda masculina em sarja com elastano.", "99.90", "masculino",
			[]string{"Caqui", "Preto"}, []string{"38", "40", "42", "44"}, 18),
		p("Conjunto Cropped e Saia", "Conjunto de cropped e saia midi em malha canelada.", "229.90", "conjuntos",
			[]string{"Verde", "Preto"}, []string{"P", "M", "G"}, 8),
		p("Bolsa de Palha", "Bolsa artesanal de palha com alça de couro.", "159.90", "acessorios",
			[]string{"Natural"}, []string{"Único"}, 6),
	}
}

// seedCatalog inserts the sample products. It does nothing when products
// already exist unless force is set.
func seedCatalog(ctx context.Context, repo repository.ProductRepository, force bool) (int, error) {
	if !force {
		existing, err := repo.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("list products: %w", err)
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	inserted := 0
	for _, p := range sampleCatalog() {
		if err := repo.Create(ctx, &p); err != nil {
			return inserted, fmt.Errorf("create %q: %w", p.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
