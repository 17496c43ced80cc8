package xrechnung

import (
	"fmt"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
)

// Generator construye el XML CII de la factura. No guarda estado mutable:
// se puede usar concurrentemente para facturas distintas.
type Generator struct {
	specification string
}

// NewGenerator crea el generador. specification vacío = XRechnung 3.0 (EN16931 compliant).
func NewGenerator(specification string) *Generator {
	if specification == "" {
		specification = en16931.SpecificationXRechnung30
	}
	return &Generator{specification: specification}
}

// Generate devuelve el documento CrossIndustryInvoice completo como string UTF-8.
// Los campos de texto vacíos se emiten como elementos vacíos; solo los errores de
// formato de fecha y el texto no representable en XML interrumpen la generación.
func (g *Generator) Generate(inv *entity.Invoice) (string, error) {
	if inv == nil {
		return "", fmt.Errorf("xrechnung: factura nula")
	}
	root, err := g.document(inv)
	if err != nil {
		return "", err
	}
	if err := root.check(); err != nil {
		return "", err
	}
	return xmlDeclaration + root.render(), nil
}

func (g *Generator) document(inv *entity.Invoice) (*element, error) {
	header, err := exchangedDocument(inv)
	if err != nil {
		return nil, err
	}
	delivery, err := tradeDelivery(inv)
	if err != nil {
		return nil, fmt.Errorf("xrechnung: %w", err)
	}
	settlement, err := tradeSettlement(inv)
	if err != nil {
		return nil, fmt.Errorf("xrechnung: %w", err)
	}

	transaction := node("rsm:SupplyChainTradeTransaction")
	transaction.add(lineItems(inv)...)
	transaction.add(tradeAgreement(inv), delivery, settlement)

	root := &element{
		name: RootElement,
		attrs: []attr{
			{"xmlns:rsm", NsRsm},
			{"xmlns:ram", NsRam},
			{"xmlns:udt", NsUdt},
			{"xmlns:qdt", NsQdt},
		},
	}
	return root.add(
		g.documentContext(inv),
		header,
		transaction,
	), nil
}

// documentContext BG-2 / BT-24.
func (g *Generator) documentContext(inv *entity.Invoice) *element {
	spec := inv.Meta.Specification
	if spec == "" {
		spec = g.specification
	}
	return node("rsm:ExchangedDocumentContext",
		node("ram:GuidelineSpecifiedDocumentContextParameter",
			leaf("ram:ID", spec),
		),
	)
}

// exchangedDocument BT-1, BT-3, BT-2, BG-1.
func exchangedDocument(inv *entity.Invoice) (*element, error) {
	issue, err := dateTime("ram:IssueDateTime", inv.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("xrechnung: BT-2 fecha de emisión: %w", err)
	}
	var note, regulatory *element
	if inv.Note != "" {
		note = node("ram:IncludedNote", leaf("ram:Content", inv.Note))
	}
	if inv.SmallBusiness {
		text := inv.SmallBusinessNote
		if text == "" {
			text = en16931.DefaultSmallBusinessNote
		}
		regulatory = node("ram:IncludedNote",
			leaf("ram:Content", text),
			leaf("ram:SubjectCode", subjectCodeRegulatory),
		)
	}
	return node("rsm:ExchangedDocument",
		leaf("ram:ID", inv.Number),
		leaf("ram:TypeCode", typeCode(inv)),
		issue,
		note,
		regulatory,
	), nil
}

func typeCode(inv *entity.Invoice) string {
	switch {
	case inv.Meta.TypeCode != "":
		return inv.Meta.TypeCode
	case inv.TypeCode != "":
		return inv.TypeCode
	default:
		return en16931.TypeCommercialInvoice
	}
}
