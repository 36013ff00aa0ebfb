package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlaolanches/printer-server/internal/domain"
)

// separator matches the 31-dash rule the shop's old receipts used.
const separator = "-------------------------------"

// money renders a fixed two-decimal amount with the literal R$ prefix.
// No locale handling: the printer has one audience.
func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// Render produces the full instruction sequence for one order record:
// centered header, id/date block, one block per item (with exclusions and
// per-item note), totals, customer info and the final cut.
func Render(rec domain.OrderRecord) []Instruction {
	o := rec.Order

	ins := []Instruction{
		AlignCenter(),
		Line("*** PEDIDO ***"),
		BlankLine(),
		AlignLeft(),
		Line("ID: " + rec.ID),
		Line("Data: " + rec.CreatedAt.UTC().Format(time.RFC3339)),
		Line(separator),
	}

	for _, it := range o.Items {
		ins = append(ins, Line(fmt.Sprintf("%dx %s  %s", it.Qty, it.Name, money(it.UnitPrice))))
		if len(it.Exclusions) > 0 {
			ins = append(ins, Line("  Excluir: "+strings.Join(it.Exclusions, ", ")))
		}
		if it.Note != "" {
			ins = append(ins, Line("  Obs: "+it.Note))
		}
	}

	ins = append(ins,
		Line(separator),
		Line("Sub-total: "+money(o.Subtotal)),
	)
	if !o.DeliveryFee.IsZero() {
		ins = append(ins, Line("Taxa entrega: "+money(o.DeliveryFee)))
	}
	ins = append(ins,
		Line("Total: "+money(o.Total)),
		BlankLine(),
		Line(fmt.Sprintf("Cliente: %s - %s", o.CustomerName, o.CustomerPhone)),
	)
	if o.OrderNote != "" {
		ins = append(ins, Line("Obs: "+o.OrderNote))
	}

	return append(ins, Cut())
}
