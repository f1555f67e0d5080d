package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func ptr[T any](v T) *T { return &v }

func validCreate() CreateProductRequest {
	return CreateProductRequest{
		Name: "Vestido Floral", Description: "Vestido leve de verão",
		Price: "129.90", Category: "feminino",
		Colors: []string{"Azul"}, Sizes: []string{"P"}, Stock: 0,
	}
}

func TestCreateProductRequest_Valid(t *testing.T) {
	assert.NoError(t, newValidator(t).Struct(validCreate()))
}

func TestCreateProductRequest_FieldErrors(t *testing.T) {
	v := newValidator(t)

	req := validCreate()
	req.Description = "curta"
	req.Price = "0"
	req.Category = "infantil"
	req.Colors = nil
	req.Sizes = []string{}
	req.Stock = -1

	fields := FieldErrors(v.Struct(req))
	require.NotNil(t, fields)
	assert.Equal(t, "must be at least 10 characters", fields["description"])
	assert.Equal(t, "must be a number greater than zero", fields["price"])
	assert.Contains(t, fields["category"], "feminino")
	assert.Equal(t, "is required", fields["colors"])
	assert.Equal(t, "must have at least 1 item(s)", fields["sizes"])
	assert.Equal(t, "must be at least 0", fields["stock"])
	assert.NotContains(t, fields, "name")
}

func TestDecimalGT0(t *testing.T) {
	v := newValidator(t)
	for _, price := range []string{"abc", "-1", "0.00", ""} {
		req := validCreate()
		req.Price = price
		assert.Error(t, v.Struct(req), price)
	}
	for _, price := range []string{"0.01", " 59.9 ", "1000"} {
		req := validCreate()
		req.Price = price
		assert.NoError(t, v.Struct(req), price)
	}
}

func TestUpdateProductRequest_Partial(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(UpdateProductRequest{}))
	assert.NoError(t, v.Struct(UpdateProductRequest{Stock: ptr(3), IsActive: ptr(false)}))

	fields := FieldErrors(v.Struct(UpdateProductRequest{
		Name:        ptr(""),
		Description: ptr("curta"),
		Price:       ptr("-5"),
		Colors:      []string{},
	}))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "colors")
}

func TestCreateOrderRequest_NestedFieldNames(t *testing.T) {
	v := newValidator(t)
	req := CreateOrderRequest{
		PaymentMethod: "boleto",
		CustomerInfo:  CustomerInfoRequest{Name: "Ana", Email: "not-an-email", Phone: "11999990000"},
		Items:         []OrderItemRequest{{ProductID: uuid.New(), Quantity: 0}},
	}
	fields := FieldErrors(v.Struct(req))
	assert.Contains(t, fields, "paymentMethod")
	assert.Equal(t, "must be a valid email", fields["customerInfo.email"])
	assert.Equal(t, "is required", fields["items[0].quantity"])
}

func TestUpdateOrderStatusRequest(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Struct(UpdateOrderStatusRequest{Status: "shipped"}))
	fields := FieldErrors(v.Struct(UpdateOrderStatusRequest{Status: "lost"}))
	assert.Contains(t, fields["status"], "pending")
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestCreateProductRequest_BlankValues(t *testing.T) {
	v := newValidator(t)
	req := validCreate()
	req.Name = "   "
	req.Description = "  x          "
	req.Colors = []string{"   "}
	req.Sizes = []string{"P", " "}

	fields := FieldErrors(v.Struct(req))
	assert.Equal(t, "must not be blank", fields["name"])
	assert.Equal(t, "must be at least 10 characters", fields["description"])
	assert.Equal(t, "must not be blank", fields["colors[0]"])
	assert.Equal(t, "must not be blank", fields["sizes[1]"])
}

func TestUpdateProductRequest_BlankValues(t *testing.T) {
	v := newValidator(t)
	fields := FieldErrors(v.Struct(UpdateProductRequest{
		Name:        ptr(" "),
		Description: ptr("   curta   "),
		Images:      []string{""},
		Sizes:       []string{"\t"},
	}))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "images[0]")
	assert.Contains(t, fields, "sizes[0]")
}

func TestListProductsRequest_SortKey(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Struct(ListProductsRequest{Sort: "price-desc"}))
	fields := FieldErrors(v.Struct(ListProductsRequest{Sort: "popular"}))
	assert.Equal(t, "must be one of: name price-asc price-desc newest", fields["sort"])
}
