package api

import (
	"net/http"

	"github.com/nikolayk812/caja-isv/internal/common"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/wire"
)

// Customers handles GET /api/clientes.
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]wire.Customer, 0, len(customers))
	for _, c := range customers {
		out = append(out, wire.FromCustomer(c))
	}
	common.JSON(w, http.StatusOK, out)
}

// CreateCustomer handles POST /api/clientes.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateCustomer
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.customers.Create(r.Context(), domain.Customer{Name: req.Name, RTN: req.RTN})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	common.JSON(w, http.StatusOK, wire.CustomerCreated{OK: true, ID: created.ID})
}
