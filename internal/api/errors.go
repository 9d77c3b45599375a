package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nikolayk812/caja-isv/internal/common"
	"github.com/nikolayk812/caja-isv/internal/domain"
)

// writeError renders err as {"error", "code"}. Domain errors carry their
// detail after the sentinel text, e.g. "insufficient stock: 7421 (disp: 1)".
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.JSONError(w, status, appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Producto no encontrado")
	case errors.Is(err, domain.ErrInvoiceNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Factura no encontrada")
	case errors.Is(err, domain.ErrEmptyCart):
		common.JSONError(w, http.StatusBadRequest, "EMPTY_CART", "Sin items")
	case errors.Is(err, domain.ErrInvalidItem):
		common.JSONError(w, http.StatusBadRequest, "INVALID_ITEM", "Item inválido: "+detail(err, domain.ErrInvalidItem))
	case errors.Is(err, domain.ErrUnknownProduct):
		common.JSONError(w, http.StatusBadRequest, "UNKNOWN_PRODUCT", "Producto "+detail(err, domain.ErrUnknownProduct)+" no existe")
	case errors.Is(err, domain.ErrInsufficientStock):
		common.JSONError(w, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Stock insuficiente para "+detail(err, domain.ErrInsufficientStock))
	case errors.Is(err, domain.ErrCAIExpired):
		common.JSONError(w, http.StatusBadRequest, "CAI_EXPIRED", "El CAI venció "+detail(err, domain.ErrCAIExpired))
	case errors.Is(err, domain.ErrInvoiceOutOfRange):
		common.JSONError(w, http.StatusBadRequest, "OUT_OF_RANGE", "Número fuera de rango "+detail(err, domain.ErrInvoiceOutOfRange))
	case errors.Is(err, domain.ErrInvalidProduct):
		common.JSONError(w, http.StatusBadRequest, "INVALID_PRODUCT", "Producto inválido: "+detail(err, domain.ErrInvalidProduct))
	case errors.Is(err, domain.ErrInvalidCustomer):
		common.JSONError(w, http.StatusBadRequest, "INVALID_CUSTOMER", "Nombre requerido")
	case errors.Is(err, domain.ErrBarcodeTaken):
		common.JSONError(w, http.StatusConflict, "BARCODE_TAKEN", "El código de barras ya existe en otro producto")
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "Error interno")
	}
}

// detail is what follows the sentinel's own text in err's message.
func detail(err, sentinel error) string {
	msg := err.Error()
	i := strings.Index(msg, sentinel.Error())
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(msg[i+len(sentinel.Error()):], ":"))
}
