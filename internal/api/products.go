package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

var errInvalidPriceBound = errors.New("min_price and max_price must be non-negative integers in minor units")

// ProductHandler обслуживает публичный каталог.
type ProductHandler struct {
	catalog *catalog.Service
}

// NewProductHandler создаёт handler каталога.
func NewProductHandler(catalogSvc *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogSvc}
}

// List отдаёт выборку каталога по query-параметрам фильтра.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	products, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTOs(products))
}

// Get отдаёт один товар каталога.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTO(product))
}

func filterFromQuery(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category:  q.Get("category"),
		Condition: domain.ProductCondition(q.Get("condition")),
		Query:     q.Get("q"),
		Sort:      domain.ProductSort(q.Get("sort")),
	}

	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return domain.ProductFilter{}, errInvalidPriceBound
		}
		filter.MinPriceMinor = v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return domain.ProductFilter{}, errInvalidPriceBound
		}
		filter.MaxPriceMinor = v
	}

	return filter, nil
}
