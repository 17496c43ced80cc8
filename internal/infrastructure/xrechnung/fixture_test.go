package xrechnung_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

// sampleInvoice R-2025-001: una posición de 100.00 al 19 %, bruto 119.00.
func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		Number:    "R-2025-001",
		IssueDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		Lines: []entity.LineItem{{
			Description: "Service",
			UnitPrice:   dec("100.00"),
			Quantity:    decimal.NewFromInt(1),
			TaxRate:     decimal.NewFromInt(19),
			LineTotal:   dec("100.00"),
		}},
		Totals: entity.Totals{
			Net:      dec("100.00"),
			VAT:      dec("19.00"),
			VATBasis: dec("100.00"),
			VATRate:  decimal.NewFromInt(19),
			Gross:    nullDec("119.00"),
		},
		Seller: entity.Party{
			Name: "Muster GmbH", Street: "Hauptstraße", HouseNumber: "1",
			PostalCode: "10115", City: "Berlin", Email: "rechnung@muster.de",
			VATID: "DE123456789",
		},
		Buyer: entity.Party{
			Name: "Kunde AG", Street: "Marktplatz", HouseNumber: "5",
			PostalCode: "80331", City: "München", LeitwegID: "991-12345-67",
		},
	}
}
