package registrar

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// RecordType is a DNS record type accepted by the registrar.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeNS    RecordType = "NS"
	RecordTypeSRV   RecordType = "SRV"
)

// RecordTypes lists every record type the registrar accepts.
var RecordTypes = []RecordType{
	RecordTypeA,
	RecordTypeAAAA,
	RecordTypeCNAME,
	RecordTypeMX,
	RecordTypeTXT,
	RecordTypeNS,
	RecordTypeSRV,
}

// Price is a backend-quoted price for a billing period.
// Amounts are echoed as received, never recomputed.
type Price struct {
	Amount float64 `json:"amount"`
	Period string  `json:"period"`
}

// CacheInfo is backend cache provenance. It is informational only; no cache
// exists on this side.
type CacheInfo struct {
	Hit   bool `json:"hit"`
	TTL   int  `json:"ttl"`
	Stale bool `json:"stale"`
}

// LookupResult is a read-only view of a domain availability check.
type LookupResult struct {
	Domain    string     `json:"domain"`
	Available bool       `json:"available"`
	Status    string     `json:"status"` // available | registered | unknown
	Premium   bool       `json:"premium"`
	Price     *Price     `json:"price,omitempty"`
	Renewal   *Price     `json:"renewal,omitempty"`
	CheckedAt string     `json:"checkedAt,omitempty"`
	Source    string     `json:"source,omitempty"`
	Cache     *CacheInfo `json:"cache,omitempty"`
}

// PaymentMethods flags which payment rails the backend can use for a quote.
type PaymentMethods struct {
	Stripe bool `json:"stripe"`
	X402   bool `json:"x402"`
}

// QuoteResult is a priced, time-bounded offer to register a domain.
type QuoteResult struct {
	Domain         string          `json:"domain"`
	Available      bool            `json:"available"`
	Premium        bool            `json:"premium"`
	BasePriceUsd   float64         `json:"basePriceUsd"`
	MarginUsd      float64         `json:"marginUsd"`
	TotalUsd       float64         `json:"totalUsd"`
	Currency       string          `json:"currency,omitempty"`
	ValidUntil     string          `json:"validUntil,omitempty"`
	PaymentMethods *PaymentMethods `json:"paymentMethods,omitempty"`
}

// PurchaseResult is the outcome of a purchase initiation. The backend signals
// the variant by which fields are populated; ParsePurchaseResult converts that
// into an explicit sum type at parse time.
type PurchaseResult interface {
	isPurchaseResult()
	String() string
}

// CheckoutPending means payment is required to finish the registration.
type CheckoutPending struct {
	Method      string       `json:"method,omitempty"`
	CheckoutURL string       `json:"checkoutUrl"`
	SessionID   string       `json:"sessionId,omitempty"`
	Quote       *QuoteResult `json:"quote,omitempty"`
}

// RegistrationComplete means the domain was registered and a management token
// was issued.
type RegistrationComplete struct {
	Domain          string   `json:"domain"`
	RegistrationID  string   `json:"registrationId"`
	ExpiresAt       string   `json:"expiresAt"`
	Nameservers     []string `json:"nameservers,omitempty"`
	ManagementToken string   `json:"managementToken"`
	ManageURL       string   `json:"manageUrl,omitempty"`
}

// PurchaseError is a backend-reported purchase failure.
type PurchaseError struct {
	Message string `json:"error"`
}

func (*CheckoutPending) isPurchaseResult()      {}
func (*RegistrationComplete) isPurchaseResult() {}
func (*PurchaseError) isPurchaseResult()        {}

// ParsePurchaseResult builds the purchase variant from a backend response
// body. Branch priority is fixed: a checkout URL wins over a success flag,
// which wins over an error message, even if several are unexpectedly present.
func ParsePurchaseResult(body []byte) (PurchaseResult, error) {
	var probe struct {
		CheckoutURL string `json:"checkoutUrl"`
		Success     bool   `json:"success"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to parse purchase response")
	}

	switch {
	case probe.CheckoutURL != "":
		var res CheckoutPending
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, errors.Wrap(err, "failed to parse purchase response")
		}
		return &res, nil
	case probe.Success:
		var res RegistrationComplete
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, errors.Wrap(err, "failed to parse purchase response")
		}
		return &res, nil
	case probe.Error != "":
		return &PurchaseError{Message: probe.Error}, nil
	}
	return nil, errors.New("purchase response has no checkout URL, success flag or error")
}

// DNSRecord is a registrar-stored DNS record. The id is assigned by the
// registrar and is required to update or delete the record.
type DNSRecord struct {
	ID       json.Number `json:"id"`
	Domain   string      `json:"domain,omitempty"`
	Host     string      `json:"host"`
	FQDN     string      `json:"fqdn,omitempty"`
	Type     RecordType  `json:"type"`
	Answer   string      `json:"answer"`
	TTL      int         `json:"ttl"`
	Priority *int        `json:"priority,omitempty"`
}

// DNSRecordList is the record set of a domain, in backend order.
type DNSRecordList struct {
	Domain  string      `json:"domain"`
	Records []DNSRecord `json:"records"`
}

// DeleteRecordResult confirms a record deletion.
type DeleteRecordResult struct {
	Deleted bool        `json:"deleted"`
	ID      json.Number `json:"id"`
}

// DomainSettings is the settings snapshot of a managed domain.
type DomainSettings struct {
	Locked    bool `json:"locked"`
	Autorenew bool `json:"autorenew"`
	Privacy   bool `json:"privacy"`
}

// DomainInfo is a read-only snapshot of a managed domain.
type DomainInfo struct {
	Domain      string         `json:"domain"`
	PurchasedAt string         `json:"purchasedAt,omitempty"`
	ExpiresAt   string         `json:"expiresAt,omitempty"`
	Nameservers []string       `json:"nameservers,omitempty"`
	Settings    DomainSettings `json:"settings"`
	ManageURL   string         `json:"manageUrl,omitempty"`
}

// NameserversResult is the delegated nameserver set of a domain.
type NameserversResult struct {
	Domain      string   `json:"domain"`
	Nameservers []string `json:"nameservers"`
}

// SettingsResult is the settings snapshot returned by get/update settings.
type SettingsResult struct {
	Domain   string         `json:"domain"`
	Settings DomainSettings `json:"settings"`
}

// RenewResult confirms a renewal charge and the new expiry.
type RenewResult struct {
	Success    bool    `json:"success"`
	Domain     string  `json:"domain"`
	ExpiresAt  string  `json:"expiresAt"`
	ChargedUsd float64 `json:"chargedUsd"`
}

// UnlockResult reports the transfer-lock state after an unlock request.
type UnlockResult struct {
	Domain string `json:"domain"`
	Locked bool   `json:"locked"`
}

// TransferResult carries the registrar-issued transfer auth code.
type TransferResult struct {
	Domain   string `json:"domain"`
	AuthCode string `json:"authCode"`
}

// RecoverResult is the backend acknowledgement of a token recovery request.
type RecoverResult struct {
	Message string `json:"message"`
}

// AddRecordRequest is the body of a record creation. Optional fields that
// were not supplied are omitted so the backend applies its defaults.
type AddRecordRequest struct {
	Host     string     `json:"host"`
	Type     RecordType `json:"type"`
	Answer   string     `json:"answer"`
	TTL      *int       `json:"ttl,omitempty"`
	Priority *int       `json:"priority,omitempty"`
}

// UpdateRecordRequest is the body of a record update. Every field is
// optional; omitted fields mean "leave unchanged" and are not sent at all.
type UpdateRecordRequest struct {
	Host     *string     `json:"host,omitempty"`
	Type     *RecordType `json:"type,omitempty"`
	Answer   *string     `json:"answer,omitempty"`
	TTL      *int        `json:"ttl,omitempty"`
	Priority *int        `json:"priority,omitempty"`
}

// SetNameserversRequest replaces the full nameserver set of a domain.
type SetNameserversRequest struct {
	Nameservers []string `json:"nameservers"`
}

// UpdateSettingsRequest is the body of a settings update. Omitted fields mean
// "leave unchanged" and are not sent.
type UpdateSettingsRequest struct {
	Locked    *bool `json:"locked,omitempty"`
	Autorenew *bool `json:"autorenew,omitempty"`
	Privacy   *bool `json:"privacy,omitempty"`
}

// RenewRequest is the body of a renewal. Years defaults server-side when
// omitted.
type RenewRequest struct {
	Years *int `json:"years,omitempty"`
}

// RecoverRequest asks the backend to email the management token to the
// purchase address.
type RecoverRequest struct {
	Email string `json:"email"`
}
