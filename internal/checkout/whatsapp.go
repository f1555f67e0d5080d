// Package checkout builds the WhatsApp hand-off used instead of a payment flow.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/laramoda/storefront-api/internal/model"
)

const whatsappBaseURL = "https://wa.me/"

type WhatsApp struct {
	number    string
	storeName string
}

// NewWhatsApp keeps only the digits of number, the form wa.me expects.
func NewWhatsApp(number, storeName string) *WhatsApp {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	return &WhatsApp{number: digits, storeName: storeName}
}

type Inquiry struct {
	Product  *model.Product
	Color    string
	Size     string
	Quantity int
}

func (w *WhatsApp) ProductMessage(in Inquiry) string {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var b strings.Builder
	b.WriteString("Olá! Tenho interesse no produto:\n\n")
	fmt.Fprintf(&b, "*%s*\n", in.Product.Name)
	fmt.Fprintf(&b, "Preço: %s\n", FormatBRL(in.Product.Price))
	if c := strings.TrimSpace(in.Color); c != "" {
		fmt.Fprintf(&b, "Cor: %s\n", c)
	}
	if s := strings.TrimSpace(in.Size); s != "" {
		fmt.Fprintf(&b, "Tamanho: %s\n", s)
	}
	fmt.Fprintf(&b, "Quantidade: %d\n\n", qty)
	b.WriteString("Gostaria de mais informações.")
	return b.String()
}

func (w *WhatsApp) ContactMessage() string {
	return fmt.Sprintf("Olá! Gostaria de mais informações sobre a %s.", w.storeName)
}

// OrderMessage summarises an order so the store can confirm it in the chat.
func (w *WhatsApp) OrderMessage(o *model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá! Gostaria de finalizar o pedido %s:\n\n", shortID(o))
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %dx *%s*", item.Quantity, item.Name)
		var opts []string
		if item.SelectedColor != "" {
			opts = append(opts, "Cor: "+item.SelectedColor)
		}
		if item.SelectedSize != "" {
			opts = append(opts, "Tamanho: "+item.SelectedSize)
		}
		if len(opts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(opts, ", "))
		}
		fmt.Fprintf(&b, " %s\n", FormatBRL(item.Subtotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", FormatBRL(o.Total))
	fmt.Fprintf(&b, "Nome: %s\nTelefone: %s", o.CustomerInfo.Name, o.CustomerInfo.Phone)
	return b.String()
}

// Link returns the deep link that opens a chat with message pre-filled.
func (w *WhatsApp) Link(message string) string {
	return whatsappBaseURL + w.number + "?text=" + encodeText(message)
}

// encodeText percent-encodes spaces as %20 rather than '+'.
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func shortID(o *model.Order) string {
	id := o.ID.String()
	return "#" + strings.ToUpper(id[:8])
}

// FormatBRL renders d as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return sign + "R$ " + grouped.String() + "," + frac
}
