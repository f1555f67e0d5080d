package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/checkout"
	"github.com/laramoda/storefront-api/internal/dto"
)

type CheckoutService struct {
	products *ProductService
	whatsapp *checkout.WhatsApp
}

func NewCheckoutService(products *ProductService, whatsapp *checkout.WhatsApp) *CheckoutService {
	return &CheckoutService{products: products, whatsapp: whatsapp}
}

func (s *CheckoutService) ProductLink(ctx context.Context, productID uuid.UUID, req dto.WhatsAppInquiryRequest) (*dto.WhatsAppLinkResponse, error) {
	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	msg := s.whatsapp.ProductMessage(checkout.Inquiry{
		Product: product, Color: req.Color, Size: req.Size, Quantity: req.Quantity,
	})
	return &dto.WhatsAppLinkResponse{URL: s.whatsapp.Link(msg), Message: msg}, nil
}

func (s *CheckoutService) ContactLink() *dto.WhatsAppLinkResponse {
	msg := s.whatsapp.ContactMessage()
	return &dto.WhatsAppLinkResponse{URL: s.whatsapp.Link(msg), Message: msg}
}
