package xrechnung

import (
	"strconv"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
)

// lineItems una ram:IncludedSupplyChainTradeLineItem por posición, en el orden recibido.
func lineItems(inv *entity.Invoice) []*element {
	out := make([]*element, 0, len(inv.Lines))
	for i, line := range inv.Lines {
		out = append(out, lineItem(i, line, inv.SmallBusiness))
	}
	return out
}

func lineItem(index int, line entity.LineItem, smallBusiness bool) *element {
	pos := line.Position
	if pos == 0 {
		pos = index + 1
	}
	unitCode := line.UnitCode
	if unitCode == "" {
		unitCode = en16931.UnitPiece
	}

	var note *element
	if line.Note != "" {
		note = node("ram:IncludedNote", leaf("ram:Content", line.Note))
	}

	return node("ram:IncludedSupplyChainTradeLineItem",
		node("ram:AssociatedDocumentLineDocument",
			leaf("ram:LineID", strconv.Itoa(pos)),
			note,
		),
		node("ram:SpecifiedTradeProduct",
			optLeaf("ram:SellerAssignedID", line.ArticleID),
			leaf("ram:Name", line.Description),
		),
		node("ram:SpecifiedLineTradeAgreement",
			node("ram:NetPriceProductTradePrice",
				leaf("ram:ChargeAmount", FormatAmount(line.UnitPrice)),
			),
		),
		node("ram:SpecifiedLineTradeDelivery",
			leaf("ram:BilledQuantity", FormatQuantity(line.Quantity), attr{"unitCode", unitCode}),
		),
		node("ram:SpecifiedLineTradeSettlement",
			// El tipo impreso es el almacenado; solo la categoría cambia con §19 UStG.
			node("ram:ApplicableTradeTax",
				leaf("ram:TypeCode", en16931.TaxTypeVAT),
				leaf("ram:CategoryCode", VATCategoryCode(line.TaxRate, smallBusiness)),
				leaf("ram:RateApplicablePercent", FormatAmount(line.TaxRate)),
			),
			node("ram:SpecifiedTradeSettlementLineMonetarySummation",
				leaf("ram:LineTotalAmount", FormatAmount(line.LineTotal)),
			),
		),
	)
}
