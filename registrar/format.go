package registrar

import (
	"bytes"
	"fmt"
	"strings"
)

// The formatters below are pure: values are echoed as received from the
// backend, never re-derived or re-summed.

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// launchSpecialSuffix marks a zero service fee on quotes.
const launchSpecialSuffix = " (LOBSTER LAUNCH SPECIAL!)"

func (r *LookupResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Status: %s\n", strings.ToUpper(r.Status))
	fmt.Fprintf(&buf, "Available: %s\n", yesNo(r.Available))
	fmt.Fprintf(&buf, "Premium: %s\n", yesNo(r.Premium))
	if r.Price != nil {
		fmt.Fprintf(&buf, "Purchase Price: $%.2f/%s\n", r.Price.Amount, r.Price.Period)
	}
	if r.Renewal != nil {
		fmt.Fprintf(&buf, "Renewal Price: $%.2f/%s\n", r.Renewal.Amount, r.Renewal.Period)
	}
	if r.CheckedAt != "" {
		if r.Source != "" {
			fmt.Fprintf(&buf, "Checked: %s (source: %s)\n", r.CheckedAt, r.Source)
		} else {
			fmt.Fprintf(&buf, "Checked: %s\n", r.CheckedAt)
		}
	}
	if r.Cache != nil {
		if r.Cache.Hit {
			fmt.Fprintf(&buf, "Cache: hit (ttl: %ds", r.Cache.TTL)
			if r.Cache.Stale {
				buf.WriteString(", stale")
			}
			buf.WriteString(")\n")
		} else {
			buf.WriteString("Cache: miss\n")
		}
	}
	return buf.String()
}

func (r *QuoteResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Available: %s\n", yesNo(r.Available))
	if r.Premium {
		buf.WriteString("Premium: Yes\n")
	}
	fmt.Fprintf(&buf, "Base Price: $%.2f\n", r.BasePriceUsd)
	fmt.Fprintf(&buf, "Service Fee: $%.2f", r.MarginUsd)
	if r.MarginUsd == 0 {
		buf.WriteString(launchSpecialSuffix)
	}
	buf.WriteString("\n")
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	fmt.Fprintf(&buf, "Total: $%.2f %s\n", r.TotalUsd, currency)
	if r.ValidUntil != "" {
		fmt.Fprintf(&buf, "Valid Until: %s\n", r.ValidUntil)
	}
	if r.PaymentMethods != nil {
		var methods []string
		if r.PaymentMethods.Stripe {
			methods = append(methods, "stripe")
		}
		if r.PaymentMethods.X402 {
			methods = append(methods, "x402")
		}
		if len(methods) > 0 {
			fmt.Fprintf(&buf, "Payment Methods: %s\n", strings.Join(methods, ", "))
		}
	}
	return buf.String()
}

func (r *CheckoutPending) String() string {
	var buf bytes.Buffer
	buf.WriteString("Checkout pending.\n")
	if r.Method != "" {
		fmt.Fprintf(&buf, "Payment Method: %s\n", r.Method)
	}
	fmt.Fprintf(&buf, "Complete your purchase: %s\n", r.CheckoutURL)
	if r.SessionID != "" {
		fmt.Fprintf(&buf, "Session: %s\n", r.SessionID)
	}
	if r.Quote != nil {
		currency := r.Quote.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Fprintf(&buf, "Total: $%.2f %s\n", r.Quote.TotalUsd, currency)
	}
	return buf.String()
}

func (r *RegistrationComplete) String() string {
	var buf bytes.Buffer
	buf.WriteString("Registration complete!\n")
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Registration ID: %s\n", r.RegistrationID)
	fmt.Fprintf(&buf, "Expires: %s\n", r.ExpiresAt)
	if len(r.Nameservers) > 0 {
		fmt.Fprintf(&buf, "Nameservers: %s\n", strings.Join(r.Nameservers, ", "))
	}
	fmt.Fprintf(&buf, "Management Token: %s\n", r.ManagementToken)
	buf.WriteString("Save this token. It is required for all management operations and cannot be shown again.\n")
	if r.ManageURL != "" {
		fmt.Fprintf(&buf, "Manage: %s\n", r.ManageURL)
	}
	return buf.String()
}

func (r *PurchaseError) String() string {
	return "Error: " + r.Message
}

func (r *DomainInfo) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	if r.PurchasedAt != "" {
		fmt.Fprintf(&buf, "Purchased: %s\n", r.PurchasedAt)
	}
	if r.ExpiresAt != "" {
		fmt.Fprintf(&buf, "Expires: %s\n", r.ExpiresAt)
	}
	if len(r.Nameservers) > 0 {
		fmt.Fprintf(&buf, "Nameservers: %s\n", strings.Join(r.Nameservers, ", "))
	}
	fmt.Fprintf(&buf, "Locked: %s\n", yesNo(r.Settings.Locked))
	fmt.Fprintf(&buf, "Auto-renew: %s\n", yesNo(r.Settings.Autorenew))
	fmt.Fprintf(&buf, "Privacy: %s\n", yesNo(r.Settings.Privacy))
	if r.ManageURL != "" {
		fmt.Fprintf(&buf, "Manage: %s\n", r.ManageURL)
	}
	return buf.String()
}

// Line renders the record in the list format. An empty host is the apex and
// displays as "@".
func (r *DNSRecord) Line() string {
	host := r.Host
	if host == "" {
		host = "@"
	}
	line := fmt.Sprintf("[%s] %s %s %s TTL:%d", r.ID.String(), host, r.Type, r.Answer, r.TTL)
	if r.Priority != nil {
		line += fmt.Sprintf(" Priority:%d", *r.Priority)
	}
	return line
}

func (r *DNSRecord) String() string {
	return r.Line() + "\n"
}

func (r *DNSRecordList) String() string {
	if len(r.Records) == 0 {
		return "No DNS records configured."
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "DNS records for %s:\n", r.Domain)
	for _, rec := range r.Records {
		buf.WriteString(rec.Line())
		buf.WriteString("\n")
	}
	return buf.String()
}

func (r *DeleteRecordResult) String() string {
	if r.Deleted {
		return fmt.Sprintf("DNS record %s deleted.\n", r.ID.String())
	}
	return fmt.Sprintf("DNS record %s was not deleted.\n", r.ID.String())
}

func (r *NameserversResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	if len(r.Nameservers) == 0 {
		buf.WriteString("No nameservers configured.\n")
		return buf.String()
	}
	buf.WriteString("Nameservers:\n")
	for _, ns := range r.Nameservers {
		fmt.Fprintf(&buf, "- %s\n", ns)
	}
	return buf.String()
}

func (r *SettingsResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Locked: %s\n", yesNo(r.Settings.Locked))
	fmt.Fprintf(&buf, "Auto-renew: %s\n", yesNo(r.Settings.Autorenew))
	fmt.Fprintf(&buf, "Privacy: %s\n", yesNo(r.Settings.Privacy))
	return buf.String()
}

func (r *RenewResult) String() string {
	var buf bytes.Buffer
	if r.Success {
		buf.WriteString("Domain renewed.\n")
	}
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Expires: %s\n", r.ExpiresAt)
	fmt.Fprintf(&buf, "Charged: $%.2f\n", r.ChargedUsd)
	return buf.String()
}

func (r *UnlockResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Locked: %s\n", yesNo(r.Locked))
	if !r.Locked {
		buf.WriteString("Transfer lock removed. A transfer auth code can now be requested.\n")
	}
	return buf.String()
}

func (r *TransferResult) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Domain: %s\n", r.Domain)
	fmt.Fprintf(&buf, "Transfer Auth Code: %s\n", r.AuthCode)
	buf.WriteString("Provide this code to the receiving registrar to start the transfer.\n")
	return buf.String()
}

func (r *RecoverResult) String() string {
	return r.Message
}
