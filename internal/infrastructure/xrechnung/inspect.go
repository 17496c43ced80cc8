package xrechnung

import (
	"fmt"

	"github.com/beevik/etree"
)

// Summary datos leídos de vuelta del XML generado.
type Summary struct {
	InvoiceNumber string
	Lines         int
	HeaderTaxes   int
	GrandTotal    string
	DuePayable    string
}

var requiredNamespaces = map[string]string{
	"xmlns:rsm": NsRsm,
	"xmlns:ram": NsRam,
	"xmlns:udt": NsUdt,
	"xmlns:qdt": NsQdt,
}

// Inspect vuelve a parsear el documento y comprueba raíz y namespaces.
// Sirve de control de buena formación antes de archivar.
func Inspect(xmlDoc string) (*Summary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlDoc); err != nil {
		return nil, fmt.Errorf("xrechnung: XML mal formado: %w", err)
	}
	root := doc.Root()
	if root == nil || root.FullTag() != RootElement {
		return nil, fmt.Errorf("xrechnung: raíz distinta de %s", RootElement)
	}
	for key, want := range requiredNamespaces {
		if got := root.SelectAttrValue(key, ""); got != want {
			return nil, fmt.Errorf("xrechnung: namespace %s = %q, esperado %q", key, got, want)
		}
	}

	s := &Summary{
		Lines:       len(root.FindElements("./rsm:SupplyChainTradeTransaction/ram:IncludedSupplyChainTradeLineItem")),
		HeaderTaxes: len(root.FindElements("./rsm:SupplyChainTradeTransaction/ram:ApplicableHeaderTradeSettlement/ram:ApplicableTradeTax")),
	}
	if e := root.FindElement("./rsm:ExchangedDocument/ram:ID"); e != nil {
		s.InvoiceNumber = e.Text()
	}
	sum := "./rsm:SupplyChainTradeTransaction/ram:ApplicableHeaderTradeSettlement/ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	if e := root.FindElement(sum + "ram:GrandTotalAmount"); e != nil {
		s.GrandTotal = e.Text()
	}
	if e := root.FindElement(sum + "ram:DuePayableAmount"); e != nil {
		s.DuePayable = e.Text()
	}
	return s, nil
}
