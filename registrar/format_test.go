package registrar_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lobsterdomains/mcp-server/registrar"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestLookupResultString(t *testing.T) {
	res := &registrar.LookupResult{
		Domain:    "coolstartup.com",
		Available: true,
		Status:    "available",
		Price:     &registrar.Price{Amount: 12.99, Period: "year"},
		Renewal:   &registrar.Price{Amount: 19.99, Period: "year"},
	}

	out := res.String()
	assert.Contains(t, out, "Domain: coolstartup.com\n")
	assert.Contains(t, out, "Status: AVAILABLE\n")
	assert.Contains(t, out, "Available: Yes\n")
	assert.Contains(t, out, "Premium: No\n")
	assert.Contains(t, out, "Purchase Price: $12.99/year\n")
	assert.Contains(t, out, "Renewal Price: $19.99/year\n")
	assert.NotContains(t, out, "Checked:")
	assert.NotContains(t, out, "Cache:")
}

func TestLookupResultStringRegistered(t *testing.T) {
	res := &registrar.LookupResult{
		Domain:    "google.com",
		Available: false,
		Status:    "registered",
		CheckedAt: "2026-08-30T12:00:00Z",
		Source:    "rdap",
		Cache:     &registrar.CacheInfo{Hit: true, TTL: 300},
	}

	out := res.String()
	assert.Contains(t, out, "Status: REGISTERED\n")
	assert.Contains(t, out, "Available: No\n")
	assert.NotContains(t, out, "Purchase Price:", "absent prices are not rendered")
	assert.Contains(t, out, "Checked: 2026-08-30T12:00:00Z (source: rdap)\n")
	assert.Contains(t, out, "Cache: hit (ttl: 300s)\n")
}

func TestQuoteResultString(t *testing.T) {
	t.Run("zero margin gets launch special", func(t *testing.T) {
		res := &registrar.QuoteResult{
			Domain:       "coolstartup.com",
			Available:    true,
			BasePriceUsd: 10.44,
			MarginUsd:    0,
			TotalUsd:     10.44,
			Currency:     "USD",
			ValidUntil:   "2026-09-01T00:00:00Z",
			PaymentMethods: &registrar.PaymentMethods{
				Stripe: true,
				X402:   true,
			},
		}

		out := res.String()
		assert.Contains(t, out, "Base Price: $10.44\n")
		assert.Contains(t, out, "Service Fee: $0.00 (LOBSTER LAUNCH SPECIAL!)\n")
		assert.Contains(t, out, "Total: $10.44 USD\n")
		assert.Contains(t, out, "Valid Until: 2026-09-01T00:00:00Z\n")
		assert.Contains(t, out, "Payment Methods: stripe, x402\n")
	})

	t.Run("nonzero margin does not", func(t *testing.T) {
		res := &registrar.QuoteResult{
			Domain:       "coolstartup.com",
			Available:    true,
			BasePriceUsd: 10.44,
			MarginUsd:    1.50,
			TotalUsd:     11.94,
		}

		out := res.String()
		assert.Contains(t, out, "Service Fee: $1.50\n")
		assert.NotContains(t, out, "LOBSTER LAUNCH SPECIAL")
		assert.Contains(t, out, "Total: $11.94 USD\n", "currency defaults to USD")
	})
}

func TestCheckoutPendingString(t *testing.T) {
	res := &registrar.CheckoutPending{
		Method:      "stripe",
		CheckoutURL: "https://checkout.stripe.com/pay/cs_123",
		SessionID:   "cs_123",
		Quote:       &registrar.QuoteResult{TotalUsd: 10.44},
	}

	out := res.String()
	assert.True(t, strings.HasPrefix(out, "Checkout pending.\n"))
	assert.Contains(t, out, "Complete your purchase: https://checkout.stripe.com/pay/cs_123\n")
	assert.Contains(t, out, "Session: cs_123\n")
	assert.Contains(t, out, "Total: $10.44 USD\n")
}

func TestRegistrationCompleteString(t *testing.T) {
	res := &registrar.RegistrationComplete{
		Domain:          "coolstartup.com",
		RegistrationID:  "reg_1",
		ExpiresAt:       "2027-08-30T00:00:00Z",
		Nameservers:     []string{"ns1.lobster.domains", "ns2.lobster.domains"},
		ManagementToken: "lobster_abc123",
	}

	out := res.String()
	assert.True(t, strings.HasPrefix(out, "Registration complete!\n"))
	assert.Contains(t, out, "Management Token: lobster_abc123\n")
	assert.Contains(t, out, "Save this token.")
	assert.Contains(t, out, "Nameservers: ns1.lobster.domains, ns2.lobster.domains\n")
}

func TestPurchaseErrorString(t *testing.T) {
	res := &registrar.PurchaseError{Message: "payment declined"}
	assert.Equal(t, "Error: payment declined", res.String())
}

func TestDNSRecordLine(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		rec := registrar.DNSRecord{
			ID:     json.Number("1"),
			Host:   "",
			Type:   registrar.RecordTypeA,
			Answer: "123.45.67.89",
			TTL:    300,
		}
		assert.Equal(t, "[1] @ A 123.45.67.89 TTL:300", rec.Line())
	})

	t.Run("with priority", func(t *testing.T) {
		rec := registrar.DNSRecord{
			ID:       json.Number("2"),
			Host:     "mail",
			Type:     registrar.RecordTypeMX,
			Answer:   "mx.example.net",
			TTL:      3600,
			Priority: intPtr(10),
		}
		assert.Equal(t, "[2] mail MX mx.example.net TTL:3600 Priority:10", rec.Line())
	})
}

func TestDNSRecordListString(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list := &registrar.DNSRecordList{Domain: "coolstartup.com"}
		assert.Equal(t, "No DNS records configured.", list.String())
	})

	t.Run("records", func(t *testing.T) {
		list := &registrar.DNSRecordList{
			Domain: "coolstartup.com",
			Records: []registrar.DNSRecord{
				{ID: json.Number("1"), Host: "@", Type: registrar.RecordTypeA, Answer: "123.45.67.89", TTL: 300},
				{ID: json.Number("2"), Host: "www", Type: registrar.RecordTypeCNAME, Answer: "coolstartup.com", TTL: 300},
			},
		}

		out := list.String()
		assert.True(t, strings.HasPrefix(out, "DNS records for coolstartup.com:\n"))
		assert.Contains(t, out, "[1] @ A 123.45.67.89 TTL:300\n")
		assert.Contains(t, out, "[2] www CNAME coolstartup.com TTL:300\n")
	})
}

func TestSettingsResultString(t *testing.T) {
	res := &registrar.SettingsResult{
		Domain: "coolstartup.com",
		Settings: registrar.DomainSettings{
			Locked:    true,
			Autorenew: false,
			Privacy:   true,
		},
	}

	out := res.String()
	assert.Contains(t, out, "Locked: Yes\n")
	assert.Contains(t, out, "Auto-renew: No\n")
	assert.Contains(t, out, "Privacy: Yes\n")
}

func TestNameserversResultString(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		res := &registrar.NameserversResult{Domain: "coolstartup.com"}
		assert.Contains(t, res.String(), "No nameservers configured.\n")
	})

	t.Run("listed", func(t *testing.T) {
		res := &registrar.NameserversResult{
			Domain:      "coolstartup.com",
			Nameservers: []string{"ns1.example.net", "ns2.example.net"},
		}
		out := res.String()
		assert.Contains(t, out, "- ns1.example.net\n")
		assert.Contains(t, out, "- ns2.example.net\n")
	})
}

func TestRenewResultString(t *testing.T) {
	res := &registrar.RenewResult{
		Success:    true,
		Domain:     "coolstartup.com",
		ExpiresAt:  "2028-08-30T00:00:00Z",
		ChargedUsd: 19.99,
	}

	out := res.String()
	assert.True(t, strings.HasPrefix(out, "Domain renewed.\n"))
	assert.Contains(t, out, "Charged: $19.99\n")
}

func TestUnlockResultString(t *testing.T) {
	res := &registrar.UnlockResult{Domain: "coolstartup.com", Locked: false}
	out := res.String()
	assert.Contains(t, out, "Locked: No\n")
	assert.Contains(t, out, "Transfer lock removed.")
}

func TestTransferResultString(t *testing.T) {
	res := &registrar.TransferResult{Domain: "coolstartup.com", AuthCode: "XYZ-123"}
	out := res.String()
	assert.Contains(t, out, "Transfer Auth Code: XYZ-123\n")
}
