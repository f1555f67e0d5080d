package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/laramoda/storefront-api/internal/catalog"
	"github.com/laramoda/storefront-api/internal/model"
)

// RegisterValidators installs the storefront's custom tags on v and makes
// error fields report their json/form names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	custom := map[string]validator.Func{
		"notblank": validators.NotBlank,
		// min_trimmed counts characters after surrounding whitespace is removed.
		"min_trimmed": func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
		},
		"sort_key": func(fl validator.FieldLevel) bool {
			return catalog.ValidSort(catalog.SortKey(fl.Field().String()))
		},
		"decimal_gt0": func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
			return err == nil && d.IsPositive()
		},
		"category": func(fl validator.FieldLevel) bool {
			return model.ValidCategory(fl.Field().String())
		},
		"order_status": func(fl validator.FieldLevel) bool {
			return model.OrderStatus(fl.Field().String()).Valid()
		},
		"payment_method": func(fl validator.FieldLevel) bool {
			return model.ValidPaymentMethod(fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FieldErrors flattens validator errors into a field to message map. It returns
// nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name: "CreateOrderRequest.items[0].quantity" becomes "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min_trimmed":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "sort_key":
		return "must be one of: " + sortKeyList()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "decimal_gt0":
		return "must be a number greater than zero"
	case "category":
		return "must be one of: " + strings.Join(model.Categories, " ")
	case "order_status":
		return "must be one of: pending confirmed shipped delivered cancelled"
	case "payment_method":
		return "must be one of: whatsapp pix credit_card"
	}
	return "is invalid"
}

func sortKeyList() string {
	keys := make([]string, 0, len(catalog.SortKeys))
	for _, k := range catalog.SortKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, " ")
}
