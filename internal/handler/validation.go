package handler

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/laramoda/storefront-api/internal/dto"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the dto validation tags on gin's binding engine.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = dto.RegisterValidators(v)
	})
	return registerErr
}
