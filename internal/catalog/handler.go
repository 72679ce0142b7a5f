package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/topup-commerce/internal/transport"
	"github.com/frahmantamala/topup-commerce/pkg/logger"
)

type ServiceAPI interface {
	ListProducts(filter ProductFilter) ([]*Product, error)
	GetProduct(productID string) (*Product, error)
	CreateProduct(dto CreateProductDTO) (*Product, error)
	UpdateProduct(productID string, dto UpdateProductDTO) (*Product, error)
	DeleteProduct(productID string) error

	ListPackages(productID string) ([]*Package, error)
	GetPackage(packageID string) (*Package, error)
	CreatePackage(dto CreatePackageDTO) (*Package, error)
	UpdatePackage(packageID string, dto UpdatePackageDTO) (*Package, error)
	DeletePackage(packageID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.Service.ListProducts(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	p, err := h.Service.GetProduct(productID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreateProduct(dto)
	if err != nil {
		if err == ErrDuplicateProduct {
			h.WriteError(w, http.StatusConflict, "product id already exists")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdateProduct(productID, dto)
	if err != nil {
		if err == ErrProductNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.Service.DeleteProduct(productID); err != nil {
		if err == ErrProductNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	packages, err := h.Service.ListPackages(productID)
	if err != nil {
		if err == ErrProductNotFound {
			h.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"packages": packages,
		"count":    len(packages),
	})
}

func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")

	pkg, err := h.Service.GetPackage(packageID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "package not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, pkg)
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var dto CreatePackageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.Service.CreatePackage(dto)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			h.WriteError(w, http.StatusNotFound, "product not found")
		case ErrDuplicatePackage:
			h.WriteError(w, http.StatusConflict, "package id already exists")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, pkg)
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")

	var dto UpdatePackageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg, err := h.Service.UpdatePackage(packageID, dto)
	if err != nil {
		if err == ErrPackageNotFound {
			h.WriteError(w, http.StatusNotFound, "package not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, pkg)
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")

	if err := h.Service.DeletePackage(packageID); err != nil {
		if err == ErrPackageNotFound {
			h.WriteError(w, http.StatusNotFound, "package not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (ProductFilter, error) {
	q := r.URL.Query()
	filter := ProductFilter{
		Search:        q.Get("search"),
		AvailableOnly: q.Get("available") == "true",
	}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}
		filter.CategoryID = id
	}
	if v := q.Get("price_min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, err
		}
		filter.PriceMin = &d
	}
	if v := q.Get("price_max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filter, err
		}
		filter.PriceMax = &d
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter, nil
}
