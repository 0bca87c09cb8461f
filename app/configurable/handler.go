package configurable

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/go-configurable-catalog/app/api"
	"github.com/mytheresa/go-configurable-catalog/models"
	"go.uber.org/zap"
)

type TypeFilter interface {
	FilterByType(ctx context.Context, candidates []uint, typeID string) ([]uint, error)
}

type AdminProvider interface {
	TabData(ctx context.Context, productID uint, requestedAttributes bool) (*Tab, error)
	Links(ctx context.Context, productID uint) (VariantMap, error)
	Configure(ctx context.Context, productID uint, attributeCodes []string, childIDs []uint) error
}

type FilterRequest struct {
	IDs  []uint `json:"ids" validate:"max=1000"`
	Type string `json:"type" validate:"omitempty,oneof=simple virtual configurable"`
}

type FilterResponse struct {
	IDs []uint `json:"ids"`
}

type ConfigureRequest struct {
	AttributeCodes []string `json:"attribute_codes" validate:"dive,required"`
	ChildIDs       []uint   `json:"child_ids" validate:"dive,gt=0"`
}

type AdminHandler struct {
	filter   TypeFilter
	admin    AdminProvider
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewAdminHandler(filter TypeFilter, admin AdminProvider, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{
		filter:   filter,
		admin:    admin,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register mounts the admin routes on mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/products/filter", h.HandleFilter)
	mux.HandleFunc("GET /admin/products/{id}/associated", h.HandleTab)
	mux.HandleFunc("GET /admin/products/{id}/links", h.HandleLinks)
	mux.HandleFunc("PUT /admin/products/{id}/configuration", h.HandleConfigure)
}

func (h *AdminHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var input FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Type == "" {
		input.Type = models.TypeConfigurable
	}

	ids, err := h.filter.FilterByType(r.Context(), input.IDs, input.Type)
	if err != nil {
		h.fail(w, err, "failed to filter products")
		return
	}
	api.OKResponse(w, FilterResponse{IDs: ids})
}

func (h *AdminHandler) HandleTab(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	tab, err := h.admin.TabData(r.Context(), id, r.URL.Query().Has("attributes"))
	if err != nil {
		h.fail(w, err, "failed to load associated products")
		return
	}
	api.OKResponse(w, tab)
}

func (h *AdminHandler) HandleLinks(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	links, err := h.admin.Links(r.Context(), id)
	if err != nil {
		h.fail(w, err, "failed to load product links")
		return
	}
	api.OKResponse(w, links)
}

func (h *AdminHandler) HandleConfigure(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var input ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.admin.Configure(r.Context(), id, input.AttributeCodes, input.ChildIDs); err != nil {
		h.fail(w, err, "failed to configure product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) fail(w http.ResponseWriter, err error, message string) {
	status := api.StatusFor(err)
	switch {
	case status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
		api.ErrorResponse(w, status, err.Error())
	default:
		h.logger.Errorw(message, "error", err)
		api.ErrorResponse(w, status, message)
	}
}

func productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 0)
	if err != nil || id == 0 {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(id), true
}
