package xrechnung

import (
	"fmt"
	"time"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

// tradeDelivery ram:ApplicableHeaderTradeDelivery. La fecha de entrega (BT-72) es el fin
// del periodo de facturación; no existe un campo propio de entrega física.
func tradeDelivery(inv *entity.Invoice) (*element, error) {
	delivery := node("ram:ApplicableHeaderTradeDelivery")
	if inv.Period.End.IsZero() {
		return delivery, nil
	}
	end, err := dateTime("ram:OccurrenceDateTime", inv.Period.End)
	if err != nil {
		return nil, fmt.Errorf("BT-72 fecha de entrega: %w", err)
	}
	return delivery.add(node("ram:ActualDeliverySupplyChainEvent", end)), nil
}

// dateTime elemento con udt:DateTimeString en formato 102.
func dateTime(name string, t time.Time) (*element, error) {
	s, err := FormatDate102(t)
	if err != nil {
		return nil, err
	}
	return node(name, leaf("udt:DateTimeString", s, attr{"format", dateFormat102})), nil
}
