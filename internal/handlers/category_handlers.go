package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryRepo repositories.CategoryRepository
	cache        caching.CacheService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryRepo repositories.CategoryRepository, cache caching.CacheService) *CategoryHandlers {
	return &CategoryHandlers{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// invalidateCategory drops the cached row after a write. A failure means a
// dead redis may serve the stale row until the TTL expires, so it is logged.
func (h *CategoryHandlers) invalidateCategory(ctx context.Context, id int64) {
	if err := h.cache.DeleteCategory(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate cached category %d: %v", id, err)
	}
}

// CreateCategory godoc
// @Summary Create a category
// @Description Creates one category. isActive defaults to false and level to 0 when omitted.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryInput true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /category/insert [post]
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CategoryInput
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if req.Name == "" {
		return common.JSONError(c, common.Validation("Name is required"))
	}

	category := req.Category()
	if err := h.categoryRepo.Create(ctx, category); err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	return c.JSON(http.StatusCreated, category)
}

// BulkInsertCategoriesRequest is the payload for /category/bulk-insert.
type BulkInsertCategoriesRequest struct {
	Categories []models.CategoryInput `json:"categories"`
}

// BulkInsertCategories godoc
// @Summary Create many categories, skipping duplicates
// @Description Inserts a batch of categories in one statement. Rows colliding with an existing unique name are silently skipped.
// @Tags categories
// @Accept json
// @Produce json
// @Param categories body BulkInsertCategoriesRequest true "Batch payload"
// @Success 201 {object} models.BulkInsertResult
// @Failure 400 {object} common.ErrorResponse
// @Router /category/bulk-insert [post]
func (h *CategoryHandlers) BulkInsertCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req BulkInsertCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid input data"))
	}
	if len(req.Categories) == 0 {
		return common.JSONError(c, common.Validation("categories must be a non-empty array"))
	}

	categories := make([]*models.Category, 0, len(req.Categories))
	for i := range req.Categories {
		if req.Categories[i].Name == "" {
			return common.JSONError(c, common.Validation("every category needs a name"))
		}
		categories = append(categories, req.Categories[i].Category())
	}

	inserted, err := h.categoryRepo.BulkCreate(ctx, categories)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "categories"))
	}

	return c.JSON(http.StatusCreated, models.BulkInsertResult{
		OperationID: uuid.New().String(),
		Requested:   len(categories),
		Inserted:    int(inserted),
		Skipped:     len(categories) - int(inserted),
	})
}

// UpdateCategoryByID godoc
// @Summary Update a category by id
// @Description Partial update keyed by the path id. Omitted fields are left unchanged.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body models.CategoryPatch true "Fields to update"
// @Success 200 {object} models.Category
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /category/upsert/{id} [post]
func (h *CategoryHandlers) UpdateCategoryByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.JSONError(c, common.Validation("Invalid category ID"))
	}

	var patch models.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if patch.Empty() {
		return common.JSONError(c, common.Validation("No fields to update"))
	}

	category, err := h.categoryRepo.UpdateByID(ctx, id, &patch)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	h.invalidateCategory(ctx, id)
	return c.JSON(http.StatusOK, category)
}

// UpsertCategoryByName godoc
// @Summary Upsert a category keyed on its unique name
// @Description Creates the category when the name is absent, otherwise updates only the supplied fields; omitted fields are left unchanged. Name and slug are immutable via this path.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryInput true "Category payload"
// @Success 200 {object} models.Category
// @Failure 400 {object} common.ErrorResponse
// @Router /category/upsert [post]
func (h *CategoryHandlers) UpsertCategoryByName(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CategoryInput
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if req.Name == "" {
		return common.JSONError(c, common.Validation("Name is required"))
	}

	category, err := h.categoryRepo.UpsertByName(ctx, &req)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	h.invalidateCategory(ctx, category.ID)
	return c.JSON(http.StatusOK, category)
}

// UpdateManyCategoriesRequest is the payload for /category/update-many.
type UpdateManyCategoriesRequest struct {
	Names    []string `json:"names"`
	ParentID *int64   `json:"parentId"`
	IsActive *bool    `json:"isActive"`
	Level    *int     `json:"level"`
}

// UpdateManyCategories godoc
// @Summary Update all categories whose name is in a set
// @Description Applies the provided fields to every matching category. Unknown names yield a zero count, not an error.
// @Tags categories
// @Accept json
// @Produce json
// @Param update body UpdateManyCategoriesRequest true "Name set and fields"
// @Success 200 {object} models.BulkUpdateResult
// @Failure 400 {object} common.ErrorResponse
// @Router /category/update-many [post]
func (h *CategoryHandlers) UpdateManyCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateManyCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid names input"))
	}
	if len(req.Names) == 0 {
		return common.JSONError(c, common.Validation("names must be a non-empty array"))
	}

	patch := &models.CategoryPatch{
		ParentID: req.ParentID,
		IsActive: req.IsActive,
		Level:    req.Level,
	}
	if patch.Empty() {
		return common.JSONError(c, common.Validation("No fields to update"))
	}

	count, err := h.categoryRepo.UpdateManyByNames(ctx, req.Names, patch)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "categories"))
	}

	return c.JSON(http.StatusOK, models.BulkUpdateResult{
		OperationID:  uuid.New().String(),
		UpdatedCount: count,
	})
}

// CreateCategoryWithProductsRequest is the payload for POST /categories.
type CreateCategoryWithProductsRequest struct {
	Name     string                `json:"name"`
	Slug     string                `json:"slug"`
	ParentID *int64                `json:"parentId"`
	IsActive *bool                 `json:"isActive"`
	Level    *int                  `json:"level"`
	Products []models.ProductInput `json:"products"`
}

// CreateCategoryWithProducts godoc
// @Summary Create a category together with nested products
// @Description Inserts the category and every product in one transaction; either all rows land or none do.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CreateCategoryWithProductsRequest true "Category with products"
// @Success 201 {object} models.Category
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandlers) CreateCategoryWithProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateCategoryWithProductsRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("Invalid request format"))
	}
	if req.Name == "" {
		return common.JSONError(c, common.Validation("Name is required"))
	}

	input := models.CategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
		IsActive: req.IsActive,
		Level:    req.Level,
	}
	category := input.Category()

	products := make([]*models.Product, 0, len(req.Products))
	for i := range req.Products {
		products = append(products, req.Products[i].Product())
	}

	if err := h.categoryRepo.CreateWithProducts(ctx, category, products); err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	return c.JSON(http.StatusCreated, category)
}

// ListCategoriesRequest represents query parameters for listing categories
type ListCategoriesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
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

	categories, err := h.categoryRepo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "categories"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"limit":      req.Limit,
		"offset":     req.Offset,
	})
}

// GetCategory godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return common.JSONError(c, common.Validation("Invalid category ID"))
	}

	if cached, err := h.cache.GetCategory(ctx, id); err == nil {
		return c.JSON(http.StatusOK, cached)
	}

	category, err := h.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	h.cache.SetCategory(ctx, category, categoryCacheTTL)
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category by id
// @Description Checks existence first; a category still owning products is rejected with a conflict.
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return common.JSONError(c, common.Validation("Invalid category ID"))
	}

	if _, err := h.categoryRepo.GetByID(ctx, id); err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	if err := h.categoryRepo.Delete(ctx, id); err != nil {
		return common.JSONError(c, common.FromStorage(err, "category"))
	}

	h.invalidateCategory(ctx, id)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	})
}

// BulkDeleteCategoriesRequest is the payload for DELETE /categories.
type BulkDeleteCategoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds"`
}

// BulkDeleteCategories godoc
// @Summary Delete all categories in an id set
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryIds body BulkDeleteCategoriesRequest true "IDs to delete"
// @Success 200 {object} models.BulkDeleteResult
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /categories [delete]
func (h *CategoryHandlers) BulkDeleteCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req BulkDeleteCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return common.JSONError(c, common.Validation("categoryIds must be a non-empty array"))
	}
	if len(req.CategoryIDs) == 0 {
		return common.JSONError(c, common.Validation("categoryIds must be a non-empty array"))
	}

	count, err := h.categoryRepo.BulkDelete(ctx, req.CategoryIDs)
	if err != nil {
		return common.JSONError(c, common.FromStorage(err, "categories"))
	}
	if count == 0 {
		return common.JSONError(c, common.NotFound("No categories found to delete"))
	}

	for _, id := range req.CategoryIDs {
		h.invalidateCategory(ctx, id)
	}

	return c.JSON(http.StatusOK, models.BulkDeleteResult{
		OperationID:  uuid.New().String(),
		DeletedCount: count,
	})
}
