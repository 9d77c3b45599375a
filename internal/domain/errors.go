package domain

import "errors"

var (
	ErrInvalidItem       = errors.New("invalid cart item")
	ErrItemIndex         = errors.New("cart item index out of range")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrUnknownProduct    = errors.New("product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCAIExpired        = errors.New("invoice authorization expired")
	ErrInvoiceOutOfRange = errors.New("invoice number outside authorized range")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrNoInvoice         = errors.New("no invoice issued yet")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidCustomer   = errors.New("invalid customer")
	ErrBarcodeTaken      = errors.New("barcode belongs to another product")
)
