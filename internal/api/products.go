package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/caja-isv/internal/common"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/wire"
)

// Product handles GET /api/producto/{codigo}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Lookup(r.Context(), chi.URLParam(r, "codigo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, wire.FromProduct(product))
}

// Products handles GET /api/productos?q=&estado=&categoria_id=&limit=&offset=.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ProductFilter{
		Query:  strings.TrimSpace(query.Get("q")),
		Status: domain.ParseProductStatus(strings.ToLower(strings.TrimSpace(query.Get("estado")))),
	}
	if v, ok := queryInt(r, "limit"); ok {
		filter.Limit = v
	}
	if v, ok := queryInt(r, "offset"); ok {
		filter.Offset = v
	}
	if v, ok := queryInt(r, "categoria_id"); ok {
		category := int64(v)
		filter.CategoryID = &category
	}

	page, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]wire.Product, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, wire.FromProduct(p))
	}
	w.Header().Set(wire.TotalCountHeader, strconv.FormatInt(page.Total, 10))
	common.JSON(w, http.StatusOK, items)
}

// CreateProduct handles POST /api/productos.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateProduct
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if !req.Price.IsPositive() {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "Nombre y precio son obligatorios")
		return
	}
	if req.Stock.IsNegative() {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "Stock inválido")
		return
	}

	product, err := h.catalog.Create(r.Context(), req.Domain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusCreated, wire.FromProduct(product))
}

// AddBarcode handles POST /api/productos/{id}/barras.
func (h *Handler) AddBarcode(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req wire.AddBarcode
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.catalog.AddBarcode(r.Context(), id, req.Barcode); err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
