// Package xrechnung genera el XML CII (UN/CEFACT Cross Industry Invoice D16B)
// conforme a EN 16931 / XRechnung 3.0 a partir del agregado entity.Invoice.
package xrechnung

// Namespaces oficiales CII D16B.
const (
	// Raíz del documento (rsm)
	NsRsm = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	// Reusable Aggregate Business Information Entity
	NsRam = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	// Unqualified Data Type
	NsUdt = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
	// Qualified Data Type
	NsQdt = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"

	// RootElement nombre cualificado del elemento raíz.
	RootElement = "rsm:CrossIndustryInvoice"

	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	// formato de fecha UNTDID 2379
	dateFormat102 = "102"
	// SubjectCode de la nota regulatoria (UNTDID 4451)
	subjectCodeRegulatory = "REG"
)
