// Package shell is the cashier's line-oriented terminal over a register.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/caja-isv/internal/client"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/register"
	"github.com/shopspring/decimal"
)

const prompt = "caja> "

const help = `Comandos:
  buscar <codigo>                          muestra un producto
  agregar <codigo> [cantidad]              agrega un producto del catálogo
  agregar <codigo> <cantidad> <precio> <isv> <descripcion...>
                                           agrega un artículo manual (isv: 1=15%, 2=18%, 3=exento)
  quitar <n>                               quita la línea n del carrito
  carrito                                  muestra el carrito y los totales
  pagar [efectivo] [cliente...]            registra la venta e imprime la factura
  reimprimir                               imprime otra vez la última factura
  clientes                                 lista los clientes
  productos [texto]                        busca en el catálogo
  ayuda                                    muestra esta ayuda
  salir                                    termina
`

var errQuit = errors.New("quit")

type Shell struct {
	reg *register.Register
	in  io.Reader
	out io.Writer
}

func New(reg *register.Register, in io.Reader, out io.Writer) *Shell {
	return &Shell{reg: reg, in: in, out: out}
}

// Run reads commands until salir, end of input or ctx is done. Command
// failures are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	s.reg.Start(ctx)
	fmt.Fprint(s.out, help)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "Error:", message(err))
		}
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "buscar":
		return s.find(ctx, args)
	case "agregar":
		return s.add(ctx, args)
	case "quitar":
		return s.remove(args)
	case "carrito":
		s.renderCart()
		return nil
	case "pagar":
		return s.pay(ctx, args)
	case "reimprimir":
		if err := s.reg.Reprint(ctx); err != nil {
			return err
		}
		id, _ := s.reg.LastInvoiceID()
		fmt.Fprintf(s.out, "Factura %d reimpresa\n", id)
		return nil
	case "clientes":
		return s.customers(ctx)
	case "productos":
		return s.products(ctx, args)
	case "ayuda", "?":
		fmt.Fprint(s.out, help)
		return nil
	case "salir":
		return errQuit
	default:
		return fmt.Errorf("comando desconocido %q, escriba ayuda", cmd)
	}
}

func (s *Shell) find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: buscar <codigo>")
	}
	item, err := s.reg.Lookup(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s  %s  %s  %s\n", item.Code, item.Description, item.Price, item.TaxCategory)
	return nil
}

func (s *Shell) add(ctx context.Context, args []string) error {
	var item domain.CartItem
	switch {
	case len(args) == 1 || len(args) == 2:
		found, err := s.reg.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		item = found
		if len(args) == 2 {
			qty, err := parseAmount(args[1], "cantidad")
			if err != nil {
				return err
			}
			item.Quantity = qty
		}
	case len(args) >= 5:
		qty, err := parseAmount(args[1], "cantidad")
		if err != nil {
			return err
		}
		price, err := parseAmount(args[2], "precio")
		if err != nil {
			return err
		}
		category, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("isv inválido %q", args[3])
		}
		item = domain.CartItem{
			Code:        args[0],
			Description: strings.Join(args[4:], " "),
			Price:       domain.Lempiras(price),
			Quantity:    qty,
			TaxCategory: domain.TaxCategory(category),
		}
	default:
		return errors.New("uso: agregar <codigo> [cantidad] | agregar <codigo> <cantidad> <precio> <isv> <descripcion>")
	}

	if err := s.reg.Add(item); err != nil {
		return err
	}
	s.renderCart()
	return nil
}

func (s *Shell) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("uso: quitar <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("línea inválida %q", args[0])
	}
	if _, err := s.reg.Remove(n - 1); err != nil {
		return err
	}
	s.renderCart()
	return nil
}

func (s *Shell) pay(ctx context.Context, args []string) error {
	cash := decimal.Zero
	if len(args) > 0 {
		if v, err := decimal.NewFromString(args[0]); err == nil {
			cash = v
			args = args[1:]
		}
	}
	customer := domain.Customer{Name: strings.Join(args, " ")}
	if customer.Name != "" {
		customer = s.resolveCustomer(ctx, customer.Name)
	}

	receipt, err := s.reg.Pay(ctx, customer, cash)
	if err != nil && !errors.Is(err, register.ErrNotPrinted) {
		return err
	}

	number := receipt.InvoiceNumber
	if number == "" {
		number = "sin número fiscal"
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Factura\t%d (%s)\t\n", receipt.InvoiceID, number)
	fmt.Fprintf(tw, "Total\t%s\t\n", domain.FormatLempiras(receipt.Totals.Total))
	fmt.Fprintf(tw, "Efectivo\t%s\t\n", domain.FormatLempiras(receipt.Cash))
	fmt.Fprintf(tw, "Cambio\t%s\t\n", domain.FormatLempiras(receipt.Change))
	_ = tw.Flush()

	if err != nil {
		fmt.Fprintln(s.out, "Venta registrada. La factura no se imprimió, use reimprimir.")
		return err
	}
	return nil
}

// resolveCustomer completes the RTN of a known customer; unknown or
// unreachable customers keep just the typed name.
func (s *Shell) resolveCustomer(ctx context.Context, name string) domain.Customer {
	customers, err := s.reg.Customers(ctx)
	if err != nil {
		return domain.Customer{Name: name}
	}
	for _, c := range customers {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return domain.Customer{Name: name}
}

func (s *Shell) customers(ctx context.Context) error {
	customers, err := s.reg.Customers(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tRTN")
	for _, c := range customers {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.RTN)
	}
	return tw.Flush()
}

func (s *Shell) products(ctx context.Context, args []string) error {
	page, err := s.reg.Products(ctx, domain.ProductFilter{Query: strings.Join(args, " "), Limit: 50})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODIGO\tNOMBRE\tPRECIO\tISV\tSTOCK")
	for _, p := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Code, p.Name, p.Price, p.TaxCategory, p.Stock.String())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if page.Total > int64(len(page.Items)) {
		fmt.Fprintf(s.out, "(%d de %d)\n", len(page.Items), page.Total)
	}
	return nil
}

func (s *Shell) renderCart() {
	items := s.reg.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Carrito vacío")
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCODIGO\tDESCRIPCION\tCANT\tPRECIO\tISV\tSUBTOTAL")
	for i, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, it.Code, it.Description, it.Quantity.String(), it.Price, it.TaxCategory, domain.FormatLempiras(it.Subtotal()))
	}
	_ = tw.Flush()

	t := s.reg.Totals()
	tw = tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Exento\t%s\t\n", domain.FormatLempiras(t.Exempt))
	fmt.Fprintf(tw, "Gravado 15%%\t%s\t\n", domain.FormatLempiras(t.Taxed15))
	fmt.Fprintf(tw, "Gravado 18%%\t%s\t\n", domain.FormatLempiras(t.Taxed18))
	fmt.Fprintf(tw, "ISV 15%%\t%s\t\n", domain.FormatLempiras(t.ISV15))
	fmt.Fprintf(tw, "ISV 18%%\t%s\t\n", domain.FormatLempiras(t.ISV18))
	fmt.Fprintf(tw, "TOTAL\t%s\t\n", domain.FormatLempiras(t.Total))
	_ = tw.Flush()
}

func parseAmount(s, field string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s inválido %q", field, s)
	}
	return v, nil
}

// message turns register and API errors into what the cashier reads.
func message(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, domain.ErrProductNotFound):
		return "Producto no encontrado"
	case errors.Is(err, domain.ErrEmptyCart):
		return "No hay artículos por pagar"
	case errors.Is(err, domain.ErrNoInvoice):
		return "No hay factura para reimprimir"
	case errors.Is(err, domain.ErrItemIndex):
		return "Línea inexistente"
	case errors.Is(err, domain.ErrInvalidItem):
		return "Artículo inválido: " + strings.TrimPrefix(err.Error(), domain.ErrInvalidItem.Error()+": ")
	case errors.Is(err, register.ErrNotPrinted):
		return "Factura no impresa: " + err.Error()
	default:
		return err.Error()
	}
}
