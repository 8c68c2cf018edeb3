// Package pdf genera facturas y recibos en PDF a partir de los datos estructurados del documento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + RCCM/NIF  │  FACTURE / REÇU + Fecha │
//	│  CLIENTE: Nombre + teléfono + email                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Description | Date | Qté | Prix | TVA | Montant     │
//	│  (recibo: objeto del pago + monto)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: HT / TVA / TTC + Payé / Reliquat / Statut         │
//	│  PAGOS: historial de paiements                              │
//	│  "Fait à <ciudad>, le dd/mm/aaaa"                           │
//	│  FOOTER: razón social | RCCM | NIF | dirección | tel        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	"github.com/jhoicas/facturation-api/pkg/money"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 51, Blue: 102}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Letterhead datos de la empresa emisora impresos en cabecera y pie.
type Letterhead struct {
	CompanyName string
	RCCM        string
	NIF         string
	Address     string
	Phone       string
	City        string
	Currency    string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	lh  Letterhead
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(lh Letterhead) *MarotoPDFGenerator {
	if lh.Currency == "" {
		lh.Currency = money.DefaultCurrency
	}
	if lh.City == "" {
		lh.City = "Bamako"
	}
	return &MarotoPDFGenerator{lh: lh, now: time.Now}
}

// GenerateInvoicePDF genera el PDF (factura o recibo) y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	payments []*entity.PaymentEntry,
) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("%w: documento vacío", domain.ErrRender)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(invoice.Type), true).
		WithAuthor(g.lh.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if invoice.Type == entity.TypeReceipt {
		m.AddRows(g.receiptBodyRows(invoice)...)
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(g.tableDetailRows(invoice.Items)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(g.totalsRow(invoice))
	}

	m.AddRows(g.balanceRow(invoice))
	if len(payments) > 0 {
		m.AddRows(g.paymentRows(payments)...)
	}

	m.AddRows(row.New(6))
	m.AddRows(g.signatureRow())
	m.AddRows(row.New(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generar documento: %w", domain.ErrRender, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RCCM/NIF (izq) y tipo de documento + fecha (der).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.lh.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("RCCM : %s   |   NIF : %s", g.lh.RCCM, g.lh.NIF), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(invoice.Type), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(invoice.ID), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Date : "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(invoice *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tél : %s   |   Email : %s",
				nonEmpty(invoice.ClientPhone, "-"),
				nonEmpty(invoice.ClientEmail, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("Date", 2, align.Center),
		h("Qté", 1, align.Center),
		h("Prix", 2, align.Right),
		h("TVA", 1, align.Center),
		h("Montant", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) tableDetailRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		date := ""
		if !it.Date.IsZero() {
			date = it.Date.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(date, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.StringFixed(0)+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(it.Amount()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: Total HT / TVA / Total TTC. montant_total es el HT.
func (g *MarotoPDFGenerator) totalsRow(invoice *entity.Invoice) core.Row {
	tax := ledger.ComputeTax(invoice.Items)
	ttc := invoice.TotalAmount.Add(tax)
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total HT :", 1, false),
			label("TVA :", 7, false),
			label("Total TTC :", 13, true),
		),
		col.New(3).Add(
			value(money.FormatCurrency(invoice.TotalAmount, g.lh.Currency), 1, false),
			value(money.FormatCurrency(tax, g.lh.Currency), 7, false),
			value(money.FormatCurrency(ttc, g.lh.Currency), 13, true),
		),
	)
}

func (g *MarotoPDFGenerator) receiptBodyRows(invoice *entity.Invoice) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("Objet : "+nonEmpty(invoice.Object, "-"), props.Text{Size: 10, Top: 3}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("Montant reçu : "+money.FormatCurrency(invoice.TotalAmount, g.lh.Currency), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 3, Color: colorPrimary,
			}),
		)),
	}
}

// balanceRow: payé / reliquat / statut.
func (g *MarotoPDFGenerator) balanceRow(invoice *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Payé :", 1, false),
			label("Reliquat :", 7, false),
			label("Statut :", 13, false),
		),
		col.New(3).Add(
			value(money.FormatCurrency(invoice.AmountPaid, g.lh.Currency), 1, false),
			value(money.FormatCurrency(invoice.Remainder, g.lh.Currency), 7, false),
			value(statusLabel(invoice.Status), 13, true),
		),
	)
}

func (g *MarotoPDFGenerator) paymentRows(payments []*entity.PaymentEntry) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PAIEMENTS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(p.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Color: colorGray})),
			col.New(4).Add(text.New(p.Mode, props.Text{Size: 8, Color: colorGray})),
			col.New(4).Add(text.New(money.FormatCurrency(p.Amount, g.lh.Currency), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) signatureRow() core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("Fait à %s, le %s", g.lh.City, g.now().Format("02/01/2006")),
			props.Text{Size: 9, Top: 2},
		)),
		col.New(4).Add(text.New("Signature", props.Text{
			Size: 9, Top: 2, Align: align.Right, Style: fontstyle.Italic, Color: colorGray,
		})),
	)
}

func (g *MarotoPDFGenerator) footerRows() []core.Row {
	return []core.Row{
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%s | RCCM : %s | NIF : %s", g.lh.CompanyName, g.lh.RCCM, g.lh.NIF),
			props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1},
		))),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%s | Tél : %s", g.lh.Address, g.lh.Phone),
			props.Text{Size: 7, Align: align.Center, Color: colorGray},
		))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func label(s string, top float64, grand bool) core.Component {
	p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
	if grand {
		p.Size = 10
		p.Color = colorPrimary
	}
	return text.New(s, p)
}

func value(s string, top float64, grand bool) core.Component {
	p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
	if grand {
		p.Style = fontstyle.Bold
		p.Color = colorPrimary
	}
	return text.New(s, p)
}

func documentTitle(t entity.DocumentType) string {
	if t == entity.TypeReceipt {
		return "REÇU DE PAIEMENT"
	}
	return "FACTURE"
}

func statusLabel(s entity.PaymentStatus) string {
	switch s {
	case entity.StatusPaid:
		return "Payée"
	case entity.StatusPartiallyPaid:
		return "Partiellement payée"
	default:
		return "Impayée"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
