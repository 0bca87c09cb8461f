package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/go-configurable-catalog/app/api"
	"github.com/mytheresa/go-configurable-catalog/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Code string `json:"code" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo     CategoryProvider
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewCategoryHandler(r CategoryProvider, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{repo: r, validate: validator.New(), logger: logger}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		h.logger.Errorw("failed to fetch categories", "error", err)
		api.ErrorResponse(w, api.StatusFor(err), "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			Code: c.Code,
			Name: c.Name,
		}
	}

	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing code or name")
		return
	}

	category := &models.Category{
		Code: input.Code,
		Name: input.Name,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		if errors.Is(err, models.ErrCategoryExists) {
			api.ErrorResponse(w, http.StatusConflict, "Category already exists")
			return
		}
		h.logger.Errorw("failed to create category", "code", input.Code, "error", err)
		api.ErrorResponse(w, api.StatusFor(err), "Failed to create category")
		return
	}

	api.JSONResponse(w, http.StatusCreated, map[string]string{
		"message": "Category created successfully",
	})
}
