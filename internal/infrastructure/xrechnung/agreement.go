package xrechnung

import (
	"github.com/jhoicas/xrechnung-api/internal/domain/entity"
	"github.com/jhoicas/xrechnung-api/pkg/en16931"
)

// tradeAgreement ram:ApplicableHeaderTradeAgreement: BT-10, BG-4, BG-7, BT-12.
func tradeAgreement(inv *entity.Invoice) *element {
	var contract *element
	if inv.Meta.ContractNumber != "" {
		contract = node("ram:ContractReferencedDocument",
			leaf("ram:IssuerAssignedID", inv.Meta.ContractNumber),
		)
	}
	return node("ram:ApplicableHeaderTradeAgreement",
		optLeaf("ram:BuyerReference", buyerReference(inv)),
		sellerParty(inv.Seller),
		buyerParty(inv.Buyer),
		contract,
	)
}

// buyerReference referencia explícita; si no, la Leitweg-ID del comprador.
func buyerReference(inv *entity.Invoice) string {
	if inv.Meta.BuyerReference != "" {
		return inv.Meta.BuyerReference
	}
	return inv.Buyer.LeitwegID
}

func sellerParty(p entity.Party) *element {
	var legal *element
	if p.RegisterID != "" {
		legal = node("ram:SpecifiedLegalOrganization", leaf("ram:ID", p.RegisterID))
	}
	// USt-IdNr. y Steuernummer pueden venir ambas; cada una es un registro propio.
	var vat, fiscal *element
	if p.VATID != "" {
		vat = taxRegistration(p.VATID, en16931.TaxSchemeVAT)
	}
	if p.TaxNumber != "" {
		fiscal = taxRegistration(p.TaxNumber, en16931.TaxSchemeFiscalNum)
	}
	return node("ram:SellerTradeParty",
		leaf("ram:Name", p.Name),
		legal,
		tradeContact(p),
		postalAddress(p),
		emailChannel(p.Email),
		vat,
		fiscal,
	)
}

func buyerParty(p entity.Party) *element {
	var vat *element
	if p.VATID != "" {
		vat = taxRegistration(p.VATID, en16931.TaxSchemeVAT)
	}
	return node("ram:BuyerTradeParty",
		leaf("ram:Name", p.Name),
		postalAddress(p),
		emailChannel(p.Email),
		vat,
	)
}

// tradeContact BG-6; solo si hay persona de contacto o teléfono del vendedor.
// El nombre legal de la parte no sustituye al contacto (BT-41).
func tradeContact(p entity.Party) *element {
	if p.Phone == "" && p.ContactName == "" {
		return nil
	}
	var phone, mail *element
	if p.Phone != "" {
		phone = node("ram:TelephoneUniversalCommunication", leaf("ram:CompleteNumber", p.Phone))
	}
	if p.Email != "" {
		mail = node("ram:EmailURIUniversalCommunication", leaf("ram:URIID", p.Email))
	}
	return node("ram:DefinedTradeContact",
		optLeaf("ram:PersonName", p.ContactName),
		phone,
		mail,
	)
}

func postalAddress(p entity.Party) *element {
	country := p.Country
	if country == "" {
		country = en16931.DefaultCountry
	}
	return node("ram:PostalTradeAddress",
		leaf("ram:PostcodeCode", p.PostalCode),
		leaf("ram:LineOne", p.StreetLine()),
		leaf("ram:CityName", p.City),
		leaf("ram:CountryID", country),
	)
}

func emailChannel(email string) *element {
	if email == "" {
		return nil
	}
	return node("ram:URIUniversalCommunication",
		leaf("ram:URIID", email, attr{"schemeID", en16931.URIChannelEmail}),
	)
}

func taxRegistration(id, scheme string) *element {
	return node("ram:SpecifiedTaxRegistration",
		leaf("ram:ID", id, attr{"schemeID", scheme}),
	)
}
