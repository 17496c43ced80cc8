package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice es el agregado raíz que llega ya persistido y numerado desde el flujo de facturación.
// El generador XRechnung lo trata como entrada de solo lectura.
type Invoice struct {
	Number        string    // BT-1
	IssueDate     time.Time // BT-2 (fecha de calendario, sin conversión de zona)
	TypeCode      string    // BT-3, se usa si Meta.TypeCode está vacío
	Note          string    // BT-22 texto libre opcional
	SmallBusiness bool      // Kleinunternehmer §19 UStG
	// SmallBusinessNote texto de exención; vacío = texto por defecto.
	SmallBusinessNote string
	Period            Period // BG-14
	Lines             []LineItem
	Totals            Totals
	Payment           PaymentTerms
	Seller            Party
	Buyer             Party
	Meta              XRechnungMetadata
}

// Period periodo de facturación (inicio/fin del servicio).
type Period struct {
	Start time.Time
	End   time.Time
}

// LineItem posición de la factura (BG-25).
type LineItem struct {
	Position    int    // 0 = índice+1
	Description string // BT-153
	ArticleID   string // BT-155 opcional
	Note        string // BT-127 opcional
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	UnitCode    string // vacío = C62
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal
}

// Totals totales ya calculados aguas arriba; aquí solo se formatean.
type Totals struct {
	Net          decimal.Decimal
	VAT          decimal.Decimal // importe IVA tipo general
	VATBasis     decimal.Decimal
	VATRate      decimal.Decimal
	ReducedVAT   decimal.NullDecimal
	ReducedBasis decimal.NullDecimal
	ReducedRate  decimal.NullDecimal
	Gross        decimal.NullDecimal
	Payable      decimal.NullDecimal // vacío = Gross
}

// PayableOrGross devuelve el importe a pagar; si no viene, el bruto.
func (t Totals) PayableOrGross() decimal.NullDecimal {
	if t.Payable.Valid {
		return t.Payable
	}
	return t.Gross
}

// PaymentTerms condiciones de pago y datos bancarios.
type PaymentTerms struct {
	DueDate     time.Time
	Description string // BT-20
	MeansCode   string // vacío = 58 (SEPA)
	Reference   string // BT-83
	Bank        *BankAccount
}

// BankAccount datos SEPA (BG-17).
type BankAccount struct {
	IBAN string
	BIC  string
}

// Party vendedor o comprador.
type Party struct {
	Name        string
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
	Country     string // ISO 3166-1 alpha-2, vacío = DE
	Email       string
	Phone       string
	ContactName string // solo vendedor, persona de contacto (BT-41)
	VATID       string
	TaxNumber   string // solo vendedor, Steuernummer
	RegisterID  string // solo vendedor, Handelsregister
	LeitwegID   string // solo comprador
}

// HasAddress indica si la dirección postal está completa.
func (p Party) HasAddress() bool {
	return p.Street != "" && p.PostalCode != "" && p.City != ""
}

// StreetLine calle y número en una sola línea (BT-35 / BT-50).
func (p Party) StreetLine() string {
	if p.HouseNumber == "" {
		return p.Street
	}
	return p.Street + " " + p.HouseNumber
}

// XRechnungMetadata parámetros del perfil XRechnung.
type XRechnungMetadata struct {
	Specification  string // BT-24
	Currency       string // BT-5
	BuyerReference string // BT-10
	ContractNumber string // BT-12
	TypeCode       string // BT-3
}
