package xrechnung

import (
	"fmt"
	"strings"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
	"github.com/shopspring/decimal"
)

// tradeSettlement ram:ApplicableHeaderTradeSettlement en el orden del esquema:
// referencia de pago, moneda, medio de pago, impuestos, periodo, condiciones, totales.
func tradeSettlement(inv *entity.Invoice) (*element, error) {
	currency := currencyCode(inv)

	period, err := billingPeriod(inv.Period)
	if err != nil {
		return nil, err
	}
	terms, err := paymentTerms(inv.Payment)
	if err != nil {
		return nil, err
	}

	settlement := node("ram:ApplicableHeaderTradeSettlement",
		optLeaf("ram:PaymentReference", inv.Payment.Reference),
		leaf("ram:InvoiceCurrencyCode", currency),
		paymentMeans(inv.Payment),
	)
	settlement.add(headerTaxes(inv)...)
	settlement.add(
		period,
		terms,
		monetarySummation(inv, currency),
	)
	return settlement, nil
}

func currencyCode(inv *entity.Invoice) string {
	if inv.Meta.Currency != "" {
		return inv.Meta.Currency
	}
	return en16931.DefaultCurrency
}

// paymentMeans BG-16; solo si hay datos bancarios.
func paymentMeans(p entity.PaymentTerms) *element {
	if p.Bank == nil || p.Bank.IBAN == "" {
		return nil
	}
	code := p.MeansCode
	if code == "" {
		code = en16931.PaymentMeansSEPACreditTransfer
	}
	var bic *element
	if p.Bank.BIC != "" {
		bic = node("ram:PayeeSpecifiedCreditorFinancialInstitution",
			leaf("ram:BICID", p.Bank.BIC),
		)
	}
	return node("ram:SpecifiedTradeSettlementPaymentMeans",
		leaf("ram:TypeCode", code),
		node("ram:PayeePartyCreditorFinancialAccount",
			leaf("ram:IBANID", strings.Join(strings.Fields(p.Bank.IBAN), "")),
		),
		bic,
	)
}

// headerTaxes BG-23. Kleinunternehmer: una sola declaración exenta.
// El tipo reducido se declara también con categoría S (comportamiento heredado).
func headerTaxes(inv *entity.Invoice) []*element {
	t := inv.Totals
	if inv.SmallBusiness {
		return []*element{node("ram:ApplicableTradeTax",
			leaf("ram:CalculatedAmount", FormatAmount(decimal.Zero)),
			leaf("ram:TypeCode", en16931.TaxTypeVAT),
			leaf("ram:ExemptionReason", en16931.SmallBusinessExemptionReason),
			leaf("ram:BasisAmount", FormatAmount(t.Net)),
			leaf("ram:CategoryCode", en16931.VATExempt),
			leaf("ram:RateApplicablePercent", FormatAmount(decimal.Zero)),
		)}
	}
	taxes := []*element{tradeTax(t.VAT, t.VATBasis, t.VATRate)}
	if t.ReducedVAT.Valid && t.ReducedVAT.Decimal.IsPositive() {
		taxes = append(taxes, tradeTax(t.ReducedVAT.Decimal, t.ReducedBasis.Decimal, t.ReducedRate.Decimal))
	}
	return taxes
}

func tradeTax(amount, basis, rate decimal.Decimal) *element {
	return node("ram:ApplicableTradeTax",
		leaf("ram:CalculatedAmount", FormatAmount(amount)),
		leaf("ram:TypeCode", en16931.TaxTypeVAT),
		leaf("ram:BasisAmount", FormatAmount(basis)),
		leaf("ram:CategoryCode", en16931.VATStandard),
		leaf("ram:RateApplicablePercent", FormatAmount(rate)),
	)
}

// billingPeriod BG-14. Sin fechas se omite; con una sola fecha el periodo está mal formado.
func billingPeriod(p entity.Period) (*element, error) {
	if p.Start.IsZero() && p.End.IsZero() {
		return nil, nil
	}
	start, err := dateTime("ram:StartDateTime", p.Start)
	if err != nil {
		return nil, fmt.Errorf("BT-73 inicio del periodo: %w", err)
	}
	end, err := dateTime("ram:EndDateTime", p.End)
	if err != nil {
		return nil, fmt.Errorf("BT-74 fin del periodo: %w", err)
	}
	return node("ram:BillingSpecifiedPeriod", start, end), nil
}

// paymentTerms BT-20 / BT-9.
func paymentTerms(p entity.PaymentTerms) (*element, error) {
	if p.DueDate.IsZero() && p.Description == "" {
		return nil, nil
	}
	terms := node("ram:SpecifiedTradePaymentTerms", optLeaf("ram:Description", p.Description))
	if !p.DueDate.IsZero() {
		due, err := dateTime("ram:DueDateDateTime", p.DueDate)
		if err != nil {
			return nil, fmt.Errorf("BT-9 fecha de vencimiento: %w", err)
		}
		terms.add(due)
	}
	return terms, nil
}

// monetarySummation BG-22. Neto = suma de líneas = base imponible; no se recalcula nada.
func monetarySummation(inv *entity.Invoice, currency string) *element {
	t := inv.Totals
	taxTotal := decimal.Zero
	if !inv.SmallBusiness {
		taxTotal = t.VAT
		if t.ReducedVAT.Valid {
			taxTotal = taxTotal.Add(t.ReducedVAT.Decimal)
		}
	}
	return node("ram:SpecifiedTradeSettlementHeaderMonetarySummation",
		leaf("ram:LineTotalAmount", FormatAmount(t.Net)),
		leaf("ram:TaxBasisTotalAmount", FormatAmount(t.Net)),
		leaf("ram:TaxTotalAmount", FormatAmount(taxTotal), attr{"currencyID", currency}),
		leaf("ram:GrandTotalAmount", FormatNullAmount(t.Gross)),
		leaf("ram:DuePayableAmount", FormatNullAmount(t.PayableOrGross())),
	)
}
