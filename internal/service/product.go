package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/laramoda/storefront-api/internal/catalog"
	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
	"github.com/laramoda/storefront-api/internal/storage"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoImages        = errors.New("at least one image is required")
	ErrInvalidPrice    = errors.New("price must be a number greater than zero")
)

// FieldError reports a product field that is invalid once trimmed and de-duplicated.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Message }

const minDescriptionLen = 10

const (
	productCacheTTL = 60 * time.Second
	catalogCacheKey = "products:all"
)

type ProductService struct {
	productRepo repository.ProductRepository
	images      storage.ImageStore
	redisClient *redis.Client
	log         *slog.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	images storage.ImageStore,
	redisClient *redis.Client,
	log *slog.Logger,
) *ProductService {
	return &ProductService{productRepo: productRepo, images: images, redisClient: redisClient, log: log}
}

// Create stores the images and inserts the product. Images already stored
// are removed again if any later step fails.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest, images []storage.Image) (resp *dto.ProductResponse, err error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	product := &model.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Category:    req.Category,
		Colors:      cleanList(req.Colors),
		Sizes:       cleanList(req.Sizes),
		Stock:       req.Stock,
		IsActive:    isActive,
	}
	if err := checkProduct(product, false); err != nil {
		return nil, err
	}

	var urls []string
	defer func() {
		if err != nil && len(urls) > 0 {
			s.removeImages(context.WithoutCancel(ctx), urls)
		}
	}()
	for _, img := range images {
		url, err := s.images.Save(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		urls = append(urls, url)
	}
	product.Images = urls

	if err = s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidateCatalog(ctx)
	out := toProductResponse(product)
	return &out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Product returns the domain record, served from cache when possible.
func (s *ProductService) Product(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.get(ctx, id)
}

func (s *ProductService) get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	cacheKey := productCacheKey(id)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
			var p model.Product
			if json.Unmarshal(cached, &p) == nil {
				return &p, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

// All returns the full catalog, inactive products included, in store order.
func (s *ProductService) All(ctx context.Context) ([]model.Product, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var products []model.Product
			if json.Unmarshal(cached, &products) == nil {
				return products, nil
			}
		}
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, catalogCacheKey, data, productCacheTTL)
		}
	}
	return products, nil
}

// Browse applies the storefront filter to the active catalog.
func (s *ProductService) Browse(ctx context.Context, req dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	shown := catalog.Apply(products, catalog.Filter{
		Search:   strings.TrimSpace(req.Search),
		Category: req.Category,
		Sort:     catalog.SortKey(req.Sort),
	})
	return toProductListResponse(shown), nil
}

func (s *ProductService) AdminList(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products), nil
}

func (s *ProductService) Categories(ctx context.Context) ([]dto.CategoryCountResponse, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := catalog.CategoryCounts(products)
	out := make([]dto.CategoryCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.CategoryCountResponse{Category: c.Category, Count: c.Count})
	}
	return out, nil
}

func (s *ProductService) Related(ctx context.Context, id uuid.UUID) ([]dto.ProductResponse, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(catalog.Related(product, all, catalog.RelatedLimit)), nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	var dropped []string
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Images != nil {
		images := cleanList(req.Images)
		dropped = missingFrom(product.Images, images)
		product.Images = images
	}
	if req.Colors != nil {
		product.Colors = cleanList(req.Colors)
	}
	if req.Sizes != nil {
		product.Sizes = cleanList(req.Sizes)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := checkProduct(product, true); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidateCache(ctx, id)
	s.removeImages(ctx, dropped)
	resp := toProductResponse(product)
	return &resp, nil
}

// Delete removes the product permanently. Orders keep their own snapshot.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateCache(ctx, id)
	s.removeImages(ctx, product.Images)
	return nil
}

func (s *ProductService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id), catalogCacheKey)
	}
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, catalogCacheKey)
	}
}

func (s *ProductService) removeImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	if err := storage.DeleteAll(ctx, s.images, urls); err != nil && s.log != nil {
		s.log.Warn("remove product images", "error", err, "count", len(urls))
	}
}

// checkProduct validates the cleaned fields, which can be empty even when the
// raw request was not.
func checkProduct(p *model.Product, requireImages bool) error {
	switch {
	case p.Name == "":
		return &FieldError{Field: "name", Message: "must not be blank"}
	case utf8.RuneCountInString(p.Description) < minDescriptionLen:
		return &FieldError{Field: "description", Message: fmt.Sprintf("must be at least %d characters", minDescriptionLen)}
	case len(p.Colors) == 0:
		return &FieldError{Field: "colors", Message: "must have at least 1 item(s)"}
	case len(p.Sizes) == 0:
		return &FieldError{Field: "sizes", Message: "must have at least 1 item(s)"}
	case requireImages && len(p.Images) == 0:
		return &FieldError{Field: "images", Message: "must have at least 1 item(s)"}
	case p.Stock < 0:
		return &FieldError{Field: "stock", Message: "must be at least 0"}
	}
	return nil
}

func productCacheKey(id uuid.UUID) string { return "product:" + id.String() }

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !price.IsPositive() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price.Round(2), nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func missingFrom(old, next []string) []string {
	var gone []string
	for _, u := range old {
		if !slices.Contains(next, u) {
			gone = append(gone, u)
		}
	}
	return gone
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Images:      nonNilStrings(p.Images),
		Colors:      nonNilStrings(p.Colors),
		Sizes:       nonNilStrings(p.Sizes),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, toProductResponse(&products[i]))
	}
	return items
}

func toProductListResponse(products []model.Product) *dto.ProductListResponse {
	items := toProductResponses(products)
	return &dto.ProductListResponse{Products: items, Total: len(items)}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
