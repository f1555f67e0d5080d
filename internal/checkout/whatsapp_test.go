package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laramoda/storefront-api/internal/model"
)

func TestFormatBRL(t *testing.T) {
	tests := map[string]string{
		"0":       "R$ 0,00",
		"9.9":     "R$ 9,90",
		"129.90":  "R$ 129,90",
		"1234.56": "R$ 1.234,56",
		"1000000": "R$ 1.000.000,00",
		"-45.5":   "-R$ 45,50",
		"999.999": "R$ 1.000,00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestProductMessage(t *testing.T) {
	w := NewWhatsApp("+55 (11) 99999-0000", "Lara Moda")
	p := &model.Product{Name: "Vestido Floral", Price: decimal.RequireFromString("129.9")}

	msg := w.ProductMessage(Inquiry{Product: p, Color: "Azul", Size: "M", Quantity: 2})
	assert.Equal(t, "Olá! Tenho interesse no produto:\n\n*Vestido Floral*\nPreço: R$ 129,90\nCor: Azul\nTamanho: M\nQuantidade: 2\n\nGostaria de mais informações.", msg)

	msg = w.ProductMessage(Inquiry{Product: p})
	assert.NotContains(t, msg, "Cor:")
	assert.NotContains(t, msg, "Tamanho:")
	assert.Contains(t, msg, "Quantidade: 1")
}

func TestLink(t *testing.T) {
	w := NewWhatsApp("+55 (11) 99999-0000", "Lara Moda")
	message := "Olá! 2 + 2 & *negrito*"
	link := w.Link(message)

	require.True(t, strings.HasPrefix(link, "https://wa.me/5511999990000?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, message, u.Query().Get("text"))
}

func TestOrderMessage(t *testing.T) {
	w := NewWhatsApp("5500000000000", "Lara Moda")
	o := &model.Order{
		ID:           uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000"),
		Total:        decimal.RequireFromString("219.80"),
		CustomerInfo: model.CustomerInfo{Name: "Ana", Phone: "11999990000"},
		Items: []model.OrderItem{
			{Name: "Vestido", Price: decimal.RequireFromString("89.90"), Quantity: 2, SelectedColor: "Azul", SelectedSize: "P"},
			{Name: "Colar", Price: decimal.RequireFromString("40"), Quantity: 1},
		},
	}
	msg := w.OrderMessage(o)
	assert.Contains(t, msg, "pedido #3F2A9C1E")
	assert.Contains(t, msg, "- 2x *Vestido* (Cor: Azul, Tamanho: P) R$ 179,80")
	assert.Contains(t, msg, "- 1x *Colar* R$ 40,00")
	assert.Contains(t, msg, "Total: R$ 219,80")
}

func TestContactMessage(t *testing.T) {
	w := NewWhatsApp("5500000000000", "Lara Moda")
	assert.Equal(t, "Olá! Gostaria de mais informações sobre a Lara Moda.", w.ContactMessage())
}
