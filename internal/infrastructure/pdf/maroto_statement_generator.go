// Package pdf implementa la generación del estado de cuenta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente  │  "ESTADO DE CUENTA" + Fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUENTA: Saldo / Límite / Estado / Días de mora              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Descripción | Monto | Saldo           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total cargos / Total pagos / SALDO ACTUAL          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// Ensure MarotoStatementGenerator implements accounts.StatementPDFGenerator.
var _ accounts.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator genera estados de cuenta usando Maroto v2.
type MarotoStatementGenerator struct {
	BusinessName string
}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator(businessName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{BusinessName: businessName}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes. Los movimientos
// llegan más recientes primero, tal como se listan en el estado de cuenta.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	customer *entity.Customer,
	account *entity.Account,
	movements []*entity.AccountMovement,
	totals *entity.MovementTotals,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta", true).
		WithAuthor(g.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.BusinessName, customer, account))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(accountRow(account))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(account, totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: cliente (izq) y título + fecha de emisión (der).
func headerRow(businessName string, customer *entity.Customer, account *entity.Account) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+customer.FullName(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA CORRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+account.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// accountRow: resumen de la cuenta.
func accountRow(account *entity.Account) core.Row {
	limit := "sin límite"
	if account.CreditLimit.Sign() > 0 {
		limit = "$" + account.CreditLimit.StringFixed(2)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Saldo: $%s   |   Límite de crédito: %s   |   Estado: %s   |   Días de mora: %d",
				account.Balance.StringFixed(2), limit, account.Status, account.DaysOverdue,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Monto", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// tableMovementRows: una fila por movimiento; los pagos van en rojo para
// distinguirlos de los cargos.
func tableMovementRows(movements []*entity.AccountMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		amountColor := colorGray
		if mv.Amount.Sign() < 0 {
			amountColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				movementLabel(mv.Type),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				mv.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+mv.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: amountColor},
			)),
			col.New(2).Add(text.New(
				"$"+mv.BalanceAfter.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(account *entity.Account, totals *entity.MovementTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total cargos:"),
			label("Total pagos:"),
			grandLabel("SALDO ACTUAL:"),
		),
		col.New(3).Add(
			value("$"+totals.TotalCharges.StringFixed(2)),
			value("$"+totals.TotalPayments.StringFixed(2)),
			grandValue("$"+account.Balance.StringFixed(2)),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func movementLabel(t entity.MovementType) string {
	switch t {
	case entity.MovementCharge:
		return "Cargo"
	case entity.MovementPayment:
		return "Pago"
	case entity.MovementAdjustment:
		return "Ajuste"
	case entity.MovementInterest:
		return "Recargo"
	default:
		return string(t)
	}
}
