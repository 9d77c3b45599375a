package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/caja-isv/internal/db"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/shopspring/decimal"
)

type saleRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewSale(pool *pgxpool.Pool) port.SaleRepository {
	return &saleRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewSaleWithTx(tx pgx.Tx) port.SaleRepository {
	return &saleRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

func (r *saleRepository) Register(ctx context.Context, sale domain.Sale, now time.Time) (domain.SaleReceipt, error) {
	if len(sale.Items) == 0 {
		return domain.SaleReceipt{}, domain.ErrEmptyCart
	}
	for i, item := range sale.Items {
		if err := item.Validate(); err != nil {
			return domain.SaleReceipt{}, fmt.Errorf("item %d: %w", i, err)
		}
	}

	requestID := uuid.NullUUID{UUID: sale.RequestID, Valid: sale.RequestID != uuid.Nil}

	out, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.SaleReceipt, error) {
		if requestID.Valid {
			id, err := q.GetSaleIDByRequestID(ctx, requestID)
			if err == nil {
				return receipt(ctx, q, id)
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return domain.SaleReceipt{}, fmt.Errorf("q.GetSaleIDByRequestID: %w", err)
			}
		}

		totals := domain.ComputeTaxes(sale.Items).Rounded()

		cai, found, err := activeCAI(ctx, q, totals.InvoiceKind())
		if err != nil {
			return domain.SaleReceipt{}, fmt.Errorf("activeCAI: %w", err)
		}

		var (
			invoiceNumber pgtype.Text
			documentNo    int64
		)
		if found {
			no, text, err := cai.Next(now)
			if err != nil {
				return domain.SaleReceipt{}, err
			}
			documentNo = no
			invoiceNumber = pgtype.Text{String: text, Valid: true}
		}

		productIDs := make([]int64, 0, len(sale.Items))
		for _, item := range sale.Items {
			productID, err := takeStock(ctx, q, item)
			if err != nil {
				return domain.SaleReceipt{}, err
			}
			productIDs = append(productIDs, productID)
		}

		cash, change := sale.Settle(totals.Total)

		saleID, err := q.InsertSale(ctx, db.InsertSaleParams{
			RequestID:     requestID,
			InvoiceNumber: invoiceNumber,
			Cai:           cai.Code,
			CustomerName:  sale.Customer(),
			CustomerRtn:   sale.CustomerRTN,
			Exempt:        totals.Exempt,
			Taxed15:       totals.Taxed15,
			Taxed18:       totals.Taxed18,
			Isv15:         totals.ISV15,
			Isv18:         totals.ISV18,
			Total:         totals.Total,
			Cash:          cash,
			Change:        change,
			PaymentMethod: domain.PaymentCash,
			Status:        domain.SaleStatusIssued,
			CreatedAt:     now,
		})
		if err != nil {
			return domain.SaleReceipt{}, fmt.Errorf("q.InsertSale: %w", err)
		}

		for _, item := range sale.Items {
			if err := insertLine(ctx, q, saleID, item); err != nil {
				return domain.SaleReceipt{}, err
			}
		}

		if found {
			err := q.UpdateCAILastNumber(ctx, db.UpdateCAILastNumberParams{ID: cai.ID, LastNumber: documentNo})
			if err != nil {
				return domain.SaleReceipt{}, fmt.Errorf("q.UpdateCAILastNumber: %w", err)
			}
		}

		return domain.SaleReceipt{
			InvoiceID:     saleID,
			InvoiceNumber: invoiceNumber.String,
			Totals:        totals,
			Cash:          cash,
			Change:        change,
			ProductIDs:    productIDs,
		}, nil
	})
	// A concurrent submission with the same request id committed first; the
	// rolled back attempt answers with that sale.
	if err != nil && requestID.Valid && r.pool != nil && isUniqueViolation(err) {
		id, lookupErr := r.q.GetSaleIDByRequestID(ctx, requestID)
		if lookupErr != nil {
			return domain.SaleReceipt{}, errors.Join(err, fmt.Errorf("q.GetSaleIDByRequestID: %w", lookupErr))
		}
		return receipt(ctx, r.q, id)
	}

	return out, err
}

func (r *saleRepository) LastInvoiceID(ctx context.Context) (int64, bool, error) {
	id, err := r.q.GetLastSaleID(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("q.GetLastSaleID: %w", err)
	}

	return id, true, nil
}

// GetInvoice loads a stored sale for printing. Totals are recomputed from
// the stored lines so a reprint always matches the items listed on it.
func (r *saleRepository) GetInvoice(ctx context.Context, id int64) (domain.Invoice, error) {
	row, err := r.q.GetSale(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("q.GetSale: %w", err)
	}

	lines, err := r.q.ListSaleLines(ctx, id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("q.ListSaleLines: %w", err)
	}

	items := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.CartItem{
			Code:        line.Code,
			Description: line.Description,
			Price:       domain.Lempiras(line.UnitPrice),
			Quantity:    line.Quantity,
			TaxCategory: domain.TaxCategory(line.TaxCategory),
		})
	}

	return domain.Invoice{
		ID:            row.ID,
		Number:        row.InvoiceNumber.String,
		CAI:           row.Cai,
		CustomerName:  row.CustomerName,
		CustomerRTN:   row.CustomerRtn,
		Items:         items,
		Totals:        domain.ComputeTaxes(items).Rounded(),
		Cash:          row.Cash,
		Change:        row.Change,
		PaymentMethod: row.PaymentMethod,
		Status:        row.Status,
		IssuedAt:      row.CreatedAt,
	}, nil
}

// activeCAI picks the newest active authorization of the wanted kind,
// falling back to the general series and then the exempt one.
func activeCAI(ctx context.Context, q *db.Queries, kind domain.InvoiceKind) (domain.CAI, bool, error) {
	for _, k := range []domain.InvoiceKind{kind, domain.InvoiceGeneral, domain.InvoiceExempt} {
		row, err := q.GetActiveCAI(ctx, string(k))
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return domain.CAI{}, false, fmt.Errorf("q.GetActiveCAI: %w", err)
		}
		return mapCAIToDomain(row), true, nil
	}

	return domain.CAI{}, false, nil
}

// takeStock decrements the stock of the product sold as item and returns its id.
func takeStock(ctx context.Context, q *db.Queries, item domain.CartItem) (int64, error) {
	product, err := q.LockProductForSale(ctx, db.LockProductForSaleParams{
		Code: item.Code,
		ID:   saleLookupID(item.Code),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, item.Code)
	}
	if err != nil {
		return 0, fmt.Errorf("q.LockProductForSale: %w", err)
	}

	if product.Stock.LessThan(item.Quantity) {
		return 0, fmt.Errorf("%w: %s (disp: %s)", domain.ErrInsufficientStock, item.Code, product.Stock.String())
	}

	err = q.DecrementStock(ctx, db.DecrementStockParams{ID: product.ID, Stock: item.Quantity})
	if err != nil {
		return 0, fmt.Errorf("q.DecrementStock: %w", err)
	}

	return product.ID, nil
}

func insertLine(ctx context.Context, q *db.Queries, saleID int64, item domain.CartItem) error {
	taxes := domain.LineTaxes(item)

	err := q.InsertSaleLine(ctx, db.InsertSaleLineParams{
		SaleID:      saleID,
		Code:        item.Code,
		Description: item.Description,
		UnitPrice:   item.Price.Amount,
		Quantity:    item.Quantity,
		TaxCategory: int16(item.TaxCategory),
		Subtotal:    item.Subtotal(),
		Exempt:      lineAmount(taxes.Exempt),
		Taxed15:     lineAmount(taxes.Taxed15),
		Taxed18:     lineAmount(taxes.Taxed18),
		Isv15:       lineAmount(taxes.ISV15),
		Isv18:       lineAmount(taxes.ISV18),
	})
	if err != nil {
		return fmt.Errorf("q.InsertSaleLine: %w", err)
	}

	return nil
}

func lineAmount(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(4)
}

func receipt(ctx context.Context, q *db.Queries, id int64) (domain.SaleReceipt, error) {
	row, err := q.GetSale(ctx, id)
	if err != nil {
		return domain.SaleReceipt{}, fmt.Errorf("q.GetSale: %w", err)
	}

	return domain.SaleReceipt{
		InvoiceID:     row.ID,
		InvoiceNumber: row.InvoiceNumber.String,
		Totals: domain.Totals{
			Exempt:  row.Exempt,
			Taxed15: row.Taxed15,
			Taxed18: row.Taxed18,
			ISV15:   row.Isv15,
			ISV18:   row.Isv18,
			Total:   row.Total,
		},
		Cash:   row.Cash,
		Change: row.Change,
	}, nil
}

func mapCAIToDomain(row db.CaiRange) domain.CAI {
	cai := domain.CAI{
		ID:            row.ID,
		Kind:          domain.InvoiceKind(row.Kind),
		Code:          row.Cai,
		Establishment: int(row.Establishment),
		EmissionPoint: int(row.EmissionPoint),
		DocumentType:  int(row.DocumentType),
		LastNumber:    row.LastNumber,
		Active:        row.Active,
	}
	if row.RangeStart.Valid && row.RangeEnd.Valid {
		cai.RangeStart = row.RangeStart.Int64
		cai.RangeEnd = row.RangeEnd.Int64
	}
	if row.Deadline.Valid {
		cai.Deadline = row.Deadline.Time
	}

	return cai
}
