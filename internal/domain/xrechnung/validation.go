package xrechnung

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/xrechnung-api/internal/domain"
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
)

// Report resultado del control estructural. Errors nunca es nil.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Err devuelve nil si el informe es válido; si no, ErrMissingRequiredField unido a cada hallazgo.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	errs := []error{domain.ErrMissingRequiredField}
	for _, msg := range r.Errors {
		errs = append(errs, errors.New(msg))
	}
	return errors.Join(errs...)
}

// Validate comprueba la presencia de los términos de negocio obligatorios.
// Solo informa: no modifica la factura ni impide generar el XML.
// No sustituye la validación Schematron/KoSIT.
func Validate(inv *entity.Invoice) Report {
	if inv == nil {
		return Report{Valid: false, Errors: []string{"BT-1: Rechnung fehlt"}}
	}
	errs := []string{}
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(inv.Number) == "" {
		add("BT-1: Rechnungsnummer fehlt")
	}
	if inv.IssueDate.IsZero() {
		add("BT-2: Rechnungsdatum fehlt")
	}

	// Verkäufer (BG-4)
	if strings.TrimSpace(inv.Seller.Name) == "" {
		add("BG-4: Name des Verkäufers fehlt (BT-27)")
	}
	if !inv.Seller.HasAddress() {
		add("BG-4: Anschrift des Verkäufers unvollständig, Straße, PLZ und Ort erforderlich (BG-5)")
	}
	if inv.Seller.VATID == "" && inv.Seller.TaxNumber == "" {
		add("BG-4: USt-IdNr. (BT-31) oder Steuernummer (BT-32) des Verkäufers fehlt")
	}

	// Käufer (BG-7)
	if strings.TrimSpace(inv.Buyer.Name) == "" {
		add("BG-7: Name des Käufers fehlt (BT-44)")
	}
	if inv.Buyer.PostalCode == "" || inv.Buyer.City == "" {
		add("BG-7: PLZ (BT-53) und Ort (BT-52) des Käufers fehlen")
	}

	// Positionen (BG-25)
	if len(inv.Lines) == 0 {
		add("BG-25: Mindestens eine Rechnungsposition erforderlich")
	}
	for i, line := range inv.Lines {
		if strings.TrimSpace(line.Description) == "" {
			add("BG-25: Position %d ohne Artikelbezeichnung (BT-153)", i+1)
		}
		// Vacía = C62 al generar.
		if line.UnitCode != "" && !en16931.ValidUnitCodes[line.UnitCode] {
			add("BG-25: Position %d Einheit (BT-130) %q unbekannt", i+1, line.UnitCode)
		}
	}

	// Beträge (BG-22)
	if !inv.Totals.Gross.Valid {
		add("BT-112: Gesamtbetrag einschließlich Umsatzsteuer fehlt")
	}
	if !inv.Totals.PayableOrGross().Valid {
		add("BT-115: Fälliger Zahlungsbetrag fehlt")
	}

	// Zahlungsanweisungen (BG-16)
	if b := inv.Payment.Bank; b != nil && b.IBAN != "" {
		if err := en16931.ValidateIBAN(b.IBAN); err != nil {
			add("BG-17: IBAN (BT-84) ungültig: %v", err)
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}
