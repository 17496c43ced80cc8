// Package en16931 contiene las listas de códigos de EN 16931 / XRechnung 3.0
// que usa el generador CII (UNTDID 5305, UNTDID 1001, UNTDID 4461, UN/ECE Rec 20).
package en16931

// =============================================================================
// Perfil / especificación (BT-24)
// =============================================================================

const (
	// SpecificationXRechnung30 identificador CIUS XRechnung 3.0 conforme a EN16931.
	SpecificationXRechnung30 = "urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_3.0"
)

// =============================================================================
// UNTDID 1001 - Tipo de documento (BT-3)
// =============================================================================

const (
	TypeCommercialInvoice = "380" // Handelsrechnung
	TypeCreditNote        = "381" // Gutschrift
	TypeCorrectedInvoice  = "384" // Rechnungskorrektur
	TypePartialInvoice    = "326" // Teilrechnung
)

// =============================================================================
// UNTDID 5305 - Categoría de IVA (BT-118 / BT-151)
// =============================================================================

const (
	VATStandard = "S" // Standard rate
	VATZero     = "Z" // Zero rated goods
	VATExempt   = "E" // Exempt from tax
)

// TaxTypeVAT TypeCode del impuesto en CII.
const TaxTypeVAT = "VAT"

// SmallBusinessExemptionReason motivo de exención (BT-120) para §19 UStG.
const SmallBusinessExemptionReason = "Kleinunternehmer gemäß §19 UStG"

// DefaultSmallBusinessNote nota obligatoria cuando el vendedor es Kleinunternehmer.
const DefaultSmallBusinessNote = "Gemäß § 19 UStG wird keine Umsatzsteuer berechnet."

// =============================================================================
// UNTDID 4461 - Medios de pago (BT-81)
// =============================================================================

const (
	PaymentMeansCreditTransfer     = "30" // Überweisung (nicht SEPA)
	PaymentMeansSEPACreditTransfer = "58" // SEPA-Überweisung
	PaymentMeansSEPADirectDebit    = "59" // SEPA-Lastschrift
)

// =============================================================================
// UN/ECE Recommendation 20 - Unidades de medida (BT-130)
// =============================================================================

const (
	UnitPiece = "C62" // Stück / one
	UnitHour  = "HUR"
	UnitDay   = "DAY"
	UnitKWh   = "KWH"
	UnitMonth = "MON"
	UnitLump  = "LS" // Pauschale
)

// ValidUnitCodes unidades aceptadas en las posiciones. Subconjunto de Rec 20/21
// habitual en facturas de servicios y suministros.
var ValidUnitCodes = map[string]bool{
	UnitPiece: true, UnitHour: true, UnitDay: true,
	UnitKWh: true, UnitMonth: true, UnitLump: true,
	"H87": true, "MIN": true, "SEC": true, "WEE": true, "ANN": true,
	"KMT": true, "MTR": true, "CMT": true, "MMT": true, "MTK": true, "MTQ": true,
	"KGM": true, "GRM": true, "TNE": true, "LTR": true,
	"SET": true, "PR": true, "P1": true, "E48": true,
	"XPP": true, "XBX": true, "XPK": true,
}

// =============================================================================
// Esquemas de identificación fiscal (BT-31 / BT-32)
// =============================================================================

const (
	TaxSchemeVAT       = "VA" // USt-IdNr.
	TaxSchemeFiscalNum = "FC" // Steuernummer
)

// URIChannelEmail schemeID de la dirección electrónica (BT-34 / BT-49).
const URIChannelEmail = "EM"

// DefaultCountry país por defecto de las partes.
const DefaultCountry = "DE"

// DefaultCurrency moneda por defecto (BT-5).
const DefaultCurrency = "EUR"
