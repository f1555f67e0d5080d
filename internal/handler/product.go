package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/service"
	"github.com/laramoda/storefront-api/internal/storage"
)

type ProductHandler struct {
	productService *service.ProductService
	maxImageBytes  int64
	log            *slog.Logger
}

func NewProductHandler(productService *service.ProductService, maxImageBytes int64, log *slog.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, maxImageBytes: maxImageBytes, log: log}
}

// Create accepts a multipart form with repeated "images" file parts. The
// form is fully validated before anything is stored.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	bindErr := c.ShouldBindWith(&req, binding.FormMultipart)
	fields := dto.FieldErrors(bindErr)
	if bindErr != nil && fields == nil {
		respondError(c, http.StatusBadRequest, "bad_request", bindErr.Error())
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["images"]
	}
	if len(files) == 0 {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["images"] = service.ErrNoImages.Error()
	}
	if fields != nil {
		respondValidation(c, fields)
		return
	}

	images := make([]storage.Image, 0, len(files))
	for _, fh := range files {
		img, err := storage.ReadImage(fh, h.maxImageBytes)
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
		images = append(images, img)
	}

	resp, err := h.productService.Create(c.Request.Context(), req, images)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	resp, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.productService.Browse(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminList returns the whole catalog, inactive products included.
func (h *ProductHandler) AdminList(c *gin.Context) {
	resp, err := h.productService.AdminList(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	resp, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": resp})
}

func (h *ProductHandler) Related(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	related, err := h.productService.Related(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{Products: related, Total: len(related)})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
