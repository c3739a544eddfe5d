// Package tools defines the fixed Lobster Domains tool catalog: argument
// schemas, pre-dispatch validation, and the handlers that map each tool to
// one registrar API call.
package tools

// Name identifies a tool in the catalog. The set is fixed for the process
// lifetime; adding or removing a tool is a compile-time change to this enum
// and the registration switch.
type Name string

const (
	LookupDomain    Name = "lookup_domain"
	GetQuote        Name = "get_quote"
	PurchaseDomain  Name = "purchase_domain"
	GetDomainInfo   Name = "get_domain_info"
	RenewDomain     Name = "renew_domain"
	ListDNSRecords  Name = "list_dns_records"
	AddDNSRecord    Name = "add_dns_record"
	UpdateDNSRecord Name = "update_dns_record"
	DeleteDNSRecord Name = "delete_dns_record"
	GetNameservers  Name = "get_nameservers"
	SetNameservers  Name = "set_nameservers"
	GetSettings     Name = "get_settings"
	UpdateSettings  Name = "update_settings"
	UnlockDomain    Name = "unlock_domain"
	GetTransferCode Name = "get_transfer_code"
	RecoverToken    Name = "recover_token"
)

func (n Name) String() string {
	return string(n)
}

// AllNames lists the full catalog: 3 unauthenticated, 12 authenticated,
// 1 recovery.
var AllNames = []Name{
	LookupDomain,
	GetQuote,
	PurchaseDomain,
	GetDomainInfo,
	RenewDomain,
	ListDNSRecords,
	AddDNSRecord,
	UpdateDNSRecord,
	DeleteDNSRecord,
	GetNameservers,
	SetNameservers,
	GetSettings,
	UpdateSettings,
	UnlockDomain,
	GetTransferCode,
	RecoverToken,
}

// Description returns the natural-language description published for a tool,
// or an empty string for a name outside the catalog.
func (n Name) Description() string {
	switch n {
	case LookupDomain:
		return "Check if a domain is available to register, with purchase and renewal pricing."
	case GetQuote:
		return "Get a priced, time-bounded quote to register a domain, including the total and accepted payment methods."
	case PurchaseDomain:
		return "Start the purchase of a domain. Returns a Stripe checkout link to complete payment, or the completed registration with its management token."
	case GetDomainInfo:
		return "Get the management snapshot of a domain you own: expiry, nameservers, and settings. Requires the management token."
	case RenewDomain:
		return "Renew a domain you own, extending its expiry. Requires the management token."
	case ListDNSRecords:
		return "List the DNS records of a domain you own. Requires the management token."
	case AddDNSRecord:
		return "Create a DNS record on a domain you own. Requires the management token."
	case UpdateDNSRecord:
		return "Update fields of an existing DNS record; omitted fields are left unchanged. Requires the management token and the record id from list_dns_records."
	case DeleteDNSRecord:
		return "Delete a DNS record by id. Requires the management token and the record id from list_dns_records."
	case GetNameservers:
		return "Get the delegated nameservers of a domain you own. Requires the management token."
	case SetNameservers:
		return "Replace the delegated nameservers of a domain you own. Requires the management token."
	case GetSettings:
		return "Get the transfer lock, auto-renew and WHOIS privacy settings of a domain you own. Requires the management token."
	case UpdateSettings:
		return "Change the transfer lock, auto-renew or WHOIS privacy settings; omitted settings are left unchanged. Requires the management token."
	case UnlockDomain:
		return "Remove the transfer lock of a domain you own so a transfer auth code can be issued. Requires the management token."
	case GetTransferCode:
		return "Get the transfer auth code of a domain you own. The domain must be unlocked first. Requires the management token."
	case RecoverToken:
		return "Email the management token to the address that purchased the domain."
	}
	return ""
}
