package dto

import (
	"strings"

	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
)

// InvoiceRequest body de POST /api/xrechnung/{generate,validate,export}
// y formato del archivo de entrada de la CLI.
type InvoiceRequest struct {
	Number            string        `json:"number"`
	IssueDate         Date          `json:"issue_date" swaggertype:"string" format:"date"`
	TypeCode          string        `json:"type_code,omitempty"`
	Note              string        `json:"note,omitempty"`
	SmallBusiness     bool          `json:"small_business"`
	SmallBusinessNote string        `json:"small_business_note,omitempty"`
	Period            PeriodDTO     `json:"period"`
	Lines             []LineDTO     `json:"lines"`
	Totals            TotalsDTO     `json:"totals"`
	Payment           PaymentDTO    `json:"payment"`
	Seller            PartyDTO      `json:"seller"`
	Buyer             PartyDTO      `json:"buyer"`
	Meta              XRechnungMeta `json:"xrechnung"`
}

// PeriodDTO periodo de prestación (BG-14).
type PeriodDTO struct {
	Start Date `json:"start" swaggertype:"string" format:"date"`
	End   Date `json:"end" swaggertype:"string" format:"date"`
}

// LineDTO posición de factura.
type LineDTO struct {
	Position    int    `json:"position,omitempty"`
	Description string `json:"description"`
	ArticleID   string `json:"article_id,omitempty"`
	Note        string `json:"note,omitempty"`
	UnitPrice   Amount `json:"unit_price" swaggertype:"string"`
	Quantity    Amount `json:"quantity" swaggertype:"string"`
	UnitCode    string `json:"unit_code,omitempty"`
	TaxRate     Amount `json:"tax_rate" swaggertype:"string"`
	LineTotal   Amount `json:"line_total" swaggertype:"string"`
}

// TotalsDTO importes de cabecera; el servicio no los recalcula.
type TotalsDTO struct {
	Net          Amount `json:"net" swaggertype:"string"`
	VAT          Amount `json:"vat" swaggertype:"string"`
	VATBasis     Amount `json:"vat_basis" swaggertype:"string"`
	VATRate      Amount `json:"vat_rate" swaggertype:"string"`
	ReducedVAT   Amount `json:"reduced_vat" swaggertype:"string"`
	ReducedBasis Amount `json:"reduced_basis" swaggertype:"string"`
	ReducedRate  Amount `json:"reduced_rate" swaggertype:"string"`
	Gross        Amount `json:"gross" swaggertype:"string"`
	Payable      Amount `json:"payable" swaggertype:"string"`
}

// PaymentDTO condiciones y datos bancarios.
type PaymentDTO struct {
	DueDate     Date   `json:"due_date" swaggertype:"string" format:"date"`
	Description string `json:"description,omitempty"`
	MeansCode   string `json:"means_code,omitempty"`
	Reference   string `json:"reference,omitempty"`
	IBAN        string `json:"iban,omitempty"`
	BIC         string `json:"bic,omitempty"`
}

// PartyDTO vendedor o comprador.
type PartyDTO struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number,omitempty"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Country     string `json:"country,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	VATID       string `json:"vat_id,omitempty"`
	TaxNumber   string `json:"tax_number,omitempty"`
	RegisterID  string `json:"register_id,omitempty"`
	LeitwegID   string `json:"leitweg_id,omitempty"`
}

// XRechnungMeta parámetros del perfil.
type XRechnungMeta struct {
	Specification  string `json:"specification,omitempty"`
	Currency       string `json:"currency,omitempty"`
	BuyerReference string `json:"buyer_reference,omitempty"`
	ContractNumber string `json:"contract_number,omitempty"`
	TypeCode       string `json:"type_code,omitempty"`
}

// ToEntity construye el agregado. Los importes ya vienen parseados por Amount.
func (r *InvoiceRequest) ToEntity() *entity.Invoice {
	inv := &entity.Invoice{
		Number:            strings.TrimSpace(r.Number),
		IssueDate:         r.IssueDate.Time,
		TypeCode:          r.TypeCode,
		Note:              r.Note,
		SmallBusiness:     r.SmallBusiness,
		SmallBusinessNote: r.SmallBusinessNote,
		Period:            entity.Period{Start: r.Period.Start.Time, End: r.Period.End.Time},
		Lines:             make([]entity.LineItem, 0, len(r.Lines)),
		Totals: entity.Totals{
			Net:          r.Totals.Net.Value,
			VAT:          r.Totals.VAT.Value,
			VATBasis:     r.Totals.VATBasis.Value,
			VATRate:      r.Totals.VATRate.Value,
			ReducedVAT:   r.Totals.ReducedVAT.Null(),
			ReducedBasis: r.Totals.ReducedBasis.Null(),
			ReducedRate:  r.Totals.ReducedRate.Null(),
			Gross:        r.Totals.Gross.Null(),
			Payable:      r.Totals.Payable.Null(),
		},
		Payment: entity.PaymentTerms{
			DueDate:     r.Payment.DueDate.Time,
			Description: r.Payment.Description,
			MeansCode:   r.Payment.MeansCode,
			Reference:   r.Payment.Reference,
		},
		Seller: r.Seller.toEntity(),
		Buyer:  r.Buyer.toEntity(),
		Meta: entity.XRechnungMetadata{
			Specification:  r.Meta.Specification,
			Currency:       r.Meta.Currency,
			BuyerReference: r.Meta.BuyerReference,
			ContractNumber: r.Meta.ContractNumber,
			TypeCode:       r.Meta.TypeCode,
		},
	}
	if r.Payment.IBAN != "" {
		inv.Payment.Bank = &entity.BankAccount{IBAN: r.Payment.IBAN, BIC: r.Payment.BIC}
	}
	for _, l := range r.Lines {
		inv.Lines = append(inv.Lines, entity.LineItem{
			Position:    l.Position,
			Description: l.Description,
			ArticleID:   l.ArticleID,
			Note:        l.Note,
			UnitPrice:   l.UnitPrice.Value,
			Quantity:    l.Quantity.Value,
			UnitCode:    l.UnitCode,
			TaxRate:     l.TaxRate.Value,
			LineTotal:   l.LineTotal.Value,
		})
	}
	return inv
}

func (p PartyDTO) toEntity() entity.Party {
	return entity.Party{
		Name:        p.Name,
		Street:      p.Street,
		HouseNumber: p.HouseNumber,
		PostalCode:  p.PostalCode,
		City:        p.City,
		Country:     p.Country,
		Email:       p.Email,
		Phone:       p.Phone,
		ContactName: p.ContactName,
		VATID:       p.VATID,
		TaxNumber:   p.TaxNumber,
		RegisterID:  p.RegisterID,
		LeitwegID:   p.LeitwegID,
	}
}

// ValidationResponse resultado del validador estructural.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// GenerateResponse XML generado sin archivar.
type GenerateResponse struct {
	XML    string `json:"xml"`
	SHA256 string `json:"sha256"`
	ValidationResponse
}

// ExportResponse XML archivado y registrado.
type ExportResponse struct {
	InvoiceNumber   string `json:"invoice_number"`
	Path            string `json:"path"`
	SHA256          string `json:"sha256"`
	CanonicalSHA256 string `json:"canonical_sha256"`
	ObjectKey       string `json:"object_key,omitempty"`
	ValidationResponse
}
