// =============================================================================
// SEPA Direct Debit Initiation - XML Serializer
// =============================================================================
//
// This file renders a validated message into the final pain.008 document.
// The document shape is expressed as a tree of structs with encoding/xml
// tags; field order in the structs IS the element order the schemas
// mandate, so reordering fields here breaks external XSD acceptance.
//
// DOCUMENT STRUCTURE:
//   <Document xmlns="urn:iso:std:iso:20022:tech:xsd:<version>"
//             xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
//             xsi:schemaLocation="<namespace> <version>.xsd">
//     <CstmrDrctDbtInitn>
//       <GrpHdr>...</GrpHdr>           <!-- message id, counts, sums -->
//       <PmtInf>...</PmtInf>           <!-- one per batch, in order -->
//         <DrctDbtTxInf>...</DrctDbtTxInf>  <!-- one per transaction -->
//     </CstmrDrctDbtInitn>
//   </Document>
//
// FORMATTING RULES:
//   - amounts with exactly two fraction digits
//   - dates in ISO calendar form (2006-01-02)
//   - BIC element name taken from the schema profile (BIC vs BICFI)
//   - missing BICs rendered as <Othr><Id>NOTPROVIDED</Id></Othr> where the
//     profile tolerates omission
//
// =============================================================================

package sepa

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// paymentMethodDirectDebit is the PmtMtd constant of pain.008.
const paymentMethodDirectDebit = "DD"

// chargeBearerSLEV assigns charges following the service level agreement.
const chargeBearerSLEV = "SLEV"

// notProvided is the fallback agent identifier for absent BICs.
const notProvided = "NOTPROVIDED"

// smnda marks a same-mandate/new-debtor-agent amendment.
const smnda = "SMNDA"

// =============================================================================
// RENDERING
// =============================================================================

// ToXML renders the message under the default schema version.
func (m *DirectDebit) ToXML() ([]byte, error) {
	return m.ToXMLVersion(DefaultSchemaVersion)
}

// ToXMLVersion validates the message against the given schema version and
// renders the document. It is a pure function of the validated message
// state; rendering twice yields identical bytes once the message identifier
// is fixed.
func (m *DirectDebit) ToXMLVersion(version SchemaVersion) ([]byte, error) {
	profile, err := ProfileFor(version)
	if err != nil {
		return nil, err
	}
	if err := m.validate(profile); err != nil {
		return nil, err
	}

	body, err := xml.MarshalIndent(m.buildDocument(profile), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pain.008 document: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// =============================================================================
// DOCUMENT BUILDING
// =============================================================================

func (m *DirectDebit) buildDocument(profile SchemaProfile) document {
	batches := m.Batches()

	doc := document{
		Xmlns:          profile.Namespace,
		XmlnsXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: profile.SchemaLocation,
	}
	doc.Initiation.GrpHdr = groupHeader{
		MsgID:   m.MessageID(),
		CreDtTm: m.creationDate.Format("2006-01-02T15:04:05-07:00"),
		NbOfTxs: len(m.transactions),
		CtrlSum: m.ControlSum().StringFixed(2),
		InitgPty: initiatingParty{
			Nm: m.account.Name,
			ID: &partyID{OrgID: organisationID{Othr: otherID{ID: m.account.CreditorIdentifier}}},
		},
	}

	for _, batch := range batches {
		doc.Initiation.PmtInf = append(doc.Initiation.PmtInf, m.buildPaymentInformation(batch, profile))
	}
	return doc
}

func (m *DirectDebit) buildPaymentInformation(batch *Batch, profile SchemaProfile) paymentInformation {
	info := paymentInformation{
		PmtInfID:  batch.ID(m.MessageID()),
		PmtMtd:    paymentMethodDirectDebit,
		BtchBookg: batch.BatchBooking,
		NbOfTxs:   len(batch.Transactions),
		CtrlSum:   batch.ControlSum().StringFixed(2),
		PmtTpInf: paymentTypeInformation{
			SvcLvl:    code{Cd: "SEPA"},
			LclInstrm: code{Cd: batch.LocalInstrument},
			SeqTp:     batch.SequenceType,
		},
		ReqdColltnDt: batch.RequestedDate.Format(dateFormat),
		Cdtr:         party{Nm: batch.Account.Name},
		CdtrAcct:     account{ID: accountID{IBAN: batch.Account.IBAN}},
		CdtrAgt:      buildAgent(batch.Account.BIC, profile),
		ChrgBr:       chargeBearerSLEV,
		CdtrSchmeID: &creditorSchemeID{
			ID: partyPrivateID{PrvtID: privateID{Othr: schemeOther{
				ID:      batch.Account.CreditorIdentifier,
				SchmeNm: &schemeName{Prtry: "SEPA"},
			}}},
		},
	}

	for _, tx := range batch.Transactions {
		info.DrctDbtTxInf = append(info.DrctDbtTxInf, buildTransaction(tx, profile))
	}
	return info
}

func buildTransaction(tx Transaction, profile SchemaProfile) directDebitTransactionInfo {
	out := directDebitTransactionInfo{
		PmtID: paymentIdentification{
			InstrID:    tx.Instruction,
			EndToEndID: tx.Reference,
		},
		InstdAmt: activeAmount{
			Ccy:   tx.Currency,
			Value: tx.Amount.StringFixed(2),
		},
		DrctDbtTx: directDebitOperation{
			MndtRltdInf: mandateInformation{
				MndtID:    tx.MandateID,
				DtOfSgntr: tx.MandateDateOfSignature.Format(dateFormat),
			},
		},
		DbtrAgt:  buildAgent(tx.BIC, profile),
		Dbtr:     party{Nm: tx.Name, PstlAdr: buildPostalAddress(tx.DebtorAddress)},
		DbtrAcct: account{ID: accountID{IBAN: tx.IBAN}},
	}

	if tx.HasAmendment() {
		amended := true
		out.DrctDbtTx.MndtRltdInf.AmdmntInd = &amended
		out.DrctDbtTx.MndtRltdInf.AmdmntInfDtls = buildAmendmentDetails(tx)
	}
	if tx.RemittanceInformation != "" {
		out.RmtInf = &remittanceInformation{Ustrd: tx.RemittanceInformation}
	}
	return out
}

// buildAmendmentDetails assembles the amendment sub-block. Exactly the set
// fields are rendered; SMNDA is carried as the original debtor agent's
// identifier.
func buildAmendmentDetails(tx Transaction) *amendmentDetails {
	details := &amendmentDetails{}

	if tx.OriginalCreditorAccount != nil {
		details.OrgnlCdtrSchmeID = &originalCreditorScheme{
			Nm: tx.OriginalCreditorAccount.Name,
			ID: partyPrivateID{PrvtID: privateID{Othr: schemeOther{
				ID: tx.OriginalCreditorAccount.CreditorIdentifier,
			}}},
		}
	}
	if tx.OriginalDebtorAccount != "" {
		details.OrgnlDbtrAcct = &account{ID: accountID{IBAN: tx.OriginalDebtorAccount}}
	}
	if tx.SameMandateNewDebtorAgent {
		details.OrgnlDbtrAgt = &agent{FinInstnID: financialInstitution{Othr: &otherID{ID: smnda}}}
	}
	return details
}

// buildAgent renders a BIC under the profile's element name, or the
// NOTPROVIDED fallback when the BIC is absent.
func buildAgent(bic string, profile SchemaProfile) agent {
	if bic == "" {
		return agent{FinInstnID: financialInstitution{Othr: &otherID{ID: notProvided}}}
	}
	if profile.BICElement == "BICFI" {
		return agent{FinInstnID: financialInstitution{BICFI: bic}}
	}
	return agent{FinInstnID: financialInstitution{BIC: bic}}
}

func buildPostalAddress(addr *DebtorAddress) *postalAddress {
	if addr == nil {
		return nil
	}
	out := &postalAddress{
		StrtNm: addr.StreetName,
		BldgNb: addr.BuildingNumber,
		PstCd:  addr.PostCode,
		TwnNm:  addr.TownName,
		Ctry:   addr.CountryCode,
	}
	if addr.AddressLine1 != "" {
		out.AdrLine = append(out.AdrLine, addr.AddressLine1)
	}
	if addr.AddressLine2 != "" {
		out.AdrLine = append(out.AdrLine, addr.AddressLine2)
	}
	return out
}

// =============================================================================
// DOCUMENT SHAPE
// =============================================================================
// Field order mirrors the schema-mandated element order. Conditional
// elements are pointers with omitempty.

type document struct {
	XMLName        xml.Name                      `xml:"Document"`
	Xmlns          string                        `xml:"xmlns,attr"`
	XmlnsXSI       string                        `xml:"xmlns:xsi,attr"`
	SchemaLocation string                        `xml:"xsi:schemaLocation,attr"`
	Initiation     customerDirectDebitInitiation `xml:"CstmrDrctDbtInitn"`
}

type customerDirectDebitInitiation struct {
	GrpHdr groupHeader          `xml:"GrpHdr"`
	PmtInf []paymentInformation `xml:"PmtInf"`
}

type groupHeader struct {
	MsgID    string           `xml:"MsgId"`
	CreDtTm  string           `xml:"CreDtTm"`
	NbOfTxs  int              `xml:"NbOfTxs"`
	CtrlSum  string           `xml:"CtrlSum"`
	InitgPty initiatingParty  `xml:"InitgPty"`
}

type initiatingParty struct {
	Nm string   `xml:"Nm"`
	ID *partyID `xml:"Id,omitempty"`
}

type partyID struct {
	OrgID organisationID `xml:"OrgId"`
}

type organisationID struct {
	Othr otherID `xml:"Othr"`
}

type otherID struct {
	ID string `xml:"Id"`
}

type paymentInformation struct {
	PmtInfID     string                       `xml:"PmtInfId"`
	PmtMtd       string                       `xml:"PmtMtd"`
	BtchBookg    bool                         `xml:"BtchBookg"`
	NbOfTxs      int                          `xml:"NbOfTxs"`
	CtrlSum      string                       `xml:"CtrlSum"`
	PmtTpInf     paymentTypeInformation       `xml:"PmtTpInf"`
	ReqdColltnDt string                       `xml:"ReqdColltnDt"`
	Cdtr         party                        `xml:"Cdtr"`
	CdtrAcct     account                      `xml:"CdtrAcct"`
	CdtrAgt      agent                        `xml:"CdtrAgt"`
	ChrgBr       string                       `xml:"ChrgBr"`
	CdtrSchmeID  *creditorSchemeID            `xml:"CdtrSchmeId,omitempty"`
	DrctDbtTxInf []directDebitTransactionInfo `xml:"DrctDbtTxInf"`
}

type paymentTypeInformation struct {
	SvcLvl    code   `xml:"SvcLvl"`
	LclInstrm code   `xml:"LclInstrm"`
	SeqTp     string `xml:"SeqTp"`
}

type code struct {
	Cd string `xml:"Cd"`
}

type party struct {
	Nm      string         `xml:"Nm"`
	PstlAdr *postalAddress `xml:"PstlAdr,omitempty"`
}

type postalAddress struct {
	StrtNm  string   `xml:"StrtNm,omitempty"`
	BldgNb  string   `xml:"BldgNb,omitempty"`
	PstCd   string   `xml:"PstCd,omitempty"`
	TwnNm   string   `xml:"TwnNm,omitempty"`
	Ctry    string   `xml:"Ctry,omitempty"`
	AdrLine []string `xml:"AdrLine,omitempty"`
}

type account struct {
	ID accountID `xml:"Id"`
}

type accountID struct {
	IBAN string `xml:"IBAN"`
}

type agent struct {
	FinInstnID financialInstitution `xml:"FinInstnId"`
}

type financialInstitution struct {
	BIC   string   `xml:"BIC,omitempty"`
	BICFI string   `xml:"BICFI,omitempty"`
	Othr  *otherID `xml:"Othr,omitempty"`
}

type creditorSchemeID struct {
	ID partyPrivateID `xml:"Id"`
}

type partyPrivateID struct {
	PrvtID privateID `xml:"PrvtId"`
}

type privateID struct {
	Othr schemeOther `xml:"Othr"`
}

type schemeOther struct {
	ID      string      `xml:"Id"`
	SchmeNm *schemeName `xml:"SchmeNm,omitempty"`
}

type schemeName struct {
	Prtry string `xml:"Prtry"`
}

type directDebitTransactionInfo struct {
	PmtID     paymentIdentification  `xml:"PmtId"`
	InstdAmt  activeAmount           `xml:"InstdAmt"`
	DrctDbtTx directDebitOperation   `xml:"DrctDbtTx"`
	DbtrAgt   agent                  `xml:"DbtrAgt"`
	Dbtr      party                  `xml:"Dbtr"`
	DbtrAcct  account                `xml:"DbtrAcct"`
	RmtInf    *remittanceInformation `xml:"RmtInf,omitempty"`
}

type paymentIdentification struct {
	InstrID    string `xml:"InstrId,omitempty"`
	EndToEndID string `xml:"EndToEndId"`
}

type activeAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type directDebitOperation struct {
	MndtRltdInf mandateInformation `xml:"MndtRltdInf"`
}

type mandateInformation struct {
	MndtID        string            `xml:"MndtId"`
	DtOfSgntr     string            `xml:"DtOfSgntr"`
	AmdmntInd     *bool             `xml:"AmdmntInd,omitempty"`
	AmdmntInfDtls *amendmentDetails `xml:"AmdmntInfDtls,omitempty"`
}

type amendmentDetails struct {
	OrgnlCdtrSchmeID *originalCreditorScheme `xml:"OrgnlCdtrSchmeId,omitempty"`
	OrgnlDbtrAcct    *account                `xml:"OrgnlDbtrAcct,omitempty"`
	OrgnlDbtrAgt     *agent                  `xml:"OrgnlDbtrAgt,omitempty"`
}

type originalCreditorScheme struct {
	Nm string         `xml:"Nm,omitempty"`
	ID partyPrivateID `xml:"Id"`
}

type remittanceInformation struct {
	Ustrd string `xml:"Ustrd"`
}
