package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"
	"shopmart/internal/services"
)

const (
	productCacheTTL = 5 * time.Minute
	presignExpiry   = 15 * time.Minute
	maxImageBytes   = 10 << 20
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productRepo repositories.ProductRepository
	imageRepo   repositories.ProductImageRepository
	imageSvc    services.ImageService
	cache       caching.CacheService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productRepo repositories.ProductRepository, imageRepo repositories.ProductImageRepository,
	imageSvc services.ImageService, cache caching.CacheService) *ProductHandlers {
	return &ProductHandlers{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		imageSvc:    imageSvc,
		cache:       cache,
	}
}

// CreateProduct godoc
// @Summary Create a product with its stock row
// @Description Inserts the product and a single stock row in one transaction. Stock quantity comes from stockQuantity (default 0); lastCheckedAt is the insert time.
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.ProductInput true "Product payload"
// @Success 201 {object} models.Product
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /products [post]
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.ProductInput
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if req.Name == "" {
		return common.JSONError(c, common.Validation("Name is required"))
	}
	if req.CategoryID <= 0 {
		return common.JSONError(c, common.Validation("categoryId is required"))
	}

	product := req.Product()
	if err := h.productRepo.CreateWithStock(ctx, product, req.Quantity()); err != nil {
		return common.JSONError(c, common.FromStorage(err, "product"))
	}

	return c.JSON(http.StatusCreated, product)
}

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid query parameters"))
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	products, err := h.productRepo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "products"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}

// GetProduct godoc
// @Summary Get a product with its stock
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.JSONError(c, common.Validation("Invalid product ID"))
	}

	if cached, err := h.cache.GetProduct(ctx, id); err == nil {
		return c.JSON(http.StatusOK, cached)
	}

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "product"))
	}

	h.cache.SetProduct(ctx, product, productCacheTTL)
	return c.JSON(http.StatusOK, product)
}

// UploadProductImage godoc
// @Summary Upload a product image
// @Description Stores the file in object storage and records a metadata row.
// @Tags products
// @Accept mpfd
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 201 {object} models.ProductImage
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /products/{id}/images [post]
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.JSONError(c, common.Validation("Invalid product ID"))
	}

	if _, err := h.productRepo.GetByID(ctx, id); err != nil {
		return common.JSONError(c, common.FromStorage(err, "product"))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.JSONError(c, common.Validation("image file is required"))
	}
	if file.Size > maxImageBytes {
		return common.JSONError(c, common.Validation("image exceeds the 10MB limit"))
	}

	src, err := file.Open()
	if err != nil {
		return common.JSONError(c, common.Internal("failed to read upload", err))
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("products/%d/%s%s", id, uuid.New().String(), path.Ext(file.Filename))

	if err := h.imageSvc.Upload(ctx, objectName, contentType, src, file.Size); err != nil {
		return common.JSONError(c, common.Internal("failed to store image", err))
	}

	image := &models.ProductImage{
		ProductID:   id,
		ObjectName:  objectName,
		ContentType: contentType,
		SizeBytes:   file.Size,
	}
	if err := h.imageRepo.Create(ctx, image); err != nil {
		// The object is orphaned if this fails; remove it so storage stays consistent.
		h.imageSvc.Delete(ctx, objectName)
		return common.JSONError(c, common.FromStorage(err, "product image"))
	}

	return c.JSON(http.StatusCreated, image)
}

// ListProductImages godoc
// @Summary List a product's images with presigned URLs
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} models.ProductImage
// @Failure 400 {object} common.ErrorResponse
// @Router /products/{id}/images [get]
func (h *ProductHandlers) ListProductImages(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.JSONError(c, common.Validation("Invalid product ID"))
	}

	images, err := h.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "product images"))
	}

	for _, image := range images {
		url, err := h.imageSvc.PresignedURL(ctx, image.ObjectName, presignExpiry)
		if err != nil {
			return common.JSONError(c, common.Internal("failed to presign image URL", err))
		}
		image.URL = url
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": images,
	})
}
