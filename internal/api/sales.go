package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/caja-isv/internal/common"
	"github.com/nikolayk812/caja-isv/internal/wire"
)

// RegisterSale handles POST /api/registrar-venta. An Idempotency-Key header
// holding a UUID makes resubmissions return the first receipt.
func (h *Handler) RegisterSale(w http.ResponseWriter, r *http.Request) {
	var req wire.SaleRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	sale := req.Domain()
	if key := strings.TrimSpace(r.Header.Get(wire.IdempotencyHeader)); key != "" {
		requestID, err := uuid.Parse(key)
		if err != nil {
			h.writeError(w, r, common.BadRequest("Idempotency-Key inválido", err))
			return
		}
		sale.RequestID = requestID
	}

	receipt, err := h.sales.Register(r.Context(), sale)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	common.JSON(w, http.StatusOK, wire.FromReceipt(receipt, fmt.Sprintf("/factura/imprimir/%d", receipt.InvoiceID)))
}

// LastInvoice handles GET /api/ultima-factura.
func (h *Handler) LastInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok, err := h.sales.LastInvoiceID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var out wire.LastInvoice
	if ok {
		out.ID = &id
	}
	common.JSON(w, http.StatusOK, out)
}

// PrintInvoice handles GET /factura/imprimir/{id}.
func (h *Handler) PrintInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := h.invoices.Printable(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=factura_%d.txt", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
