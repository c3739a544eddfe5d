package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lobsterdomains/mcp-server/mcp"
	"github.com/lobsterdomains/mcp-server/registrar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrator struct {
	registered map[string]any
}

func (f *fakeRegistrator) RegisterTool(name string, description string, handler any) error {
	if f.registered == nil {
		f.registered = make(map[string]any)
	}
	f.registered[name] = handler
	return nil
}

func TestRegisterAllCoversCatalog(t *testing.T) {
	client := registrar.NewClient("")
	registry := NewRegistry(client)

	reg := &fakeRegistrator{}
	require.NoError(t, registry.RegisterAll(reg))

	require.Len(t, reg.registered, len(AllNames))
	for _, name := range AllNames {
		assert.Contains(t, reg.registered, name.String())
		assert.NotEmpty(t, name.Description(), "tool %s has no description", name)
	}
}

// newRejectingBackend counts every request so tests can assert none arrived.
func newRejectingBackend(t *testing.T) (*registrar.Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return registrar.NewClient(srv.URL), &calls
}

func TestValidationRejectsBeforeDispatch(t *testing.T) {
	client, calls := newRejectingBackend(t)
	g := NewRegistry(client)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() (*mcp.ToolResponse, error)
		want string
	}{
		{"lookup_domain", func() (*mcp.ToolResponse, error) {
			return g.handleLookup(ctx, DomainArgs{})
		}, "missing required argument: domain"},
		{"get_quote", func() (*mcp.ToolResponse, error) {
			return g.handleQuote(ctx, DomainArgs{})
		}, "missing required argument: domain"},
		{"purchase_domain", func() (*mcp.ToolResponse, error) {
			return g.handlePurchase(ctx, DomainArgs{})
		}, "missing required argument: domain"},
		{"get_domain_info", func() (*mcp.ToolResponse, error) {
			return g.handleDomainInfo(ctx, ManageArgs{Domain: "coolstartup.com"})
		}, "missing required argument: token"},
		{"renew_domain", func() (*mcp.ToolResponse, error) {
			return g.handleRenew(ctx, RenewArgs{Token: "lobster_tok"})
		}, "missing required argument: domain"},
		{"list_dns_records", func() (*mcp.ToolResponse, error) {
			return g.handleListRecords(ctx, ManageArgs{})
		}, "missing required argument: domain"},
		{"add_dns_record missing answer", func() (*mcp.ToolResponse, error) {
			return g.handleAddRecord(ctx, AddRecordArgs{
				Domain: "coolstartup.com", Token: "lobster_tok", Host: "www", Type: "A",
			})
		}, "missing required argument: answer"},
		{"add_dns_record bad type", func() (*mcp.ToolResponse, error) {
			return g.handleAddRecord(ctx, AddRecordArgs{
				Domain: "coolstartup.com", Token: "lobster_tok", Host: "www", Type: "BOGUS", Answer: "1.2.3.4",
			})
		}, "invalid argument: type"},
		{"update_dns_record", func() (*mcp.ToolResponse, error) {
			return g.handleUpdateRecord(ctx, UpdateRecordArgs{Domain: "coolstartup.com", Token: "lobster_tok"})
		}, "missing required argument: record_id"},
		{"delete_dns_record", func() (*mcp.ToolResponse, error) {
			return g.handleDeleteRecord(ctx, DeleteRecordArgs{Domain: "coolstartup.com", Token: "lobster_tok"})
		}, "missing required argument: record_id"},
		{"get_nameservers", func() (*mcp.ToolResponse, error) {
			return g.handleGetNameservers(ctx, ManageArgs{Domain: "coolstartup.com"})
		}, "missing required argument: token"},
		{"set_nameservers empty set", func() (*mcp.ToolResponse, error) {
			return g.handleSetNameservers(ctx, SetNameserversArgs{
				Domain: "coolstartup.com", Token: "lobster_tok", Nameservers: []string{},
			})
		}, "missing required argument: nameservers"},
		{"get_settings", func() (*mcp.ToolResponse, error) {
			return g.handleGetSettings(ctx, ManageArgs{})
		}, "missing required argument: domain"},
		{"update_settings", func() (*mcp.ToolResponse, error) {
			return g.handleUpdateSettings(ctx, UpdateSettingsArgs{Domain: "coolstartup.com"})
		}, "missing required argument: token"},
		{"unlock_domain", func() (*mcp.ToolResponse, error) {
			return g.handleUnlock(ctx, ManageArgs{})
		}, "missing required argument: domain"},
		{"get_transfer_code", func() (*mcp.ToolResponse, error) {
			return g.handleTransferCode(ctx, ManageArgs{Domain: "coolstartup.com"})
		}, "missing required argument: token"},
		{"recover_token", func() (*mcp.ToolResponse, error) {
			return g.handleRecover(ctx, RecoverArgs{})
		}, "missing required argument: email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tc.call()
			assert.Nil(t, resp)
			assert.EqualError(t, err, tc.want)
		})
	}

	assert.Zero(t, atomic.LoadInt32(calls), "validation failures must not reach the backend")
}

func TestHandleLookupRendersResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lookup/coolstartup.com", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"domain":"coolstartup.com","available":true,"status":"available",
			"price":{"amount":12.99,"period":"year"},"renewal":{"amount":19.99,"period":"year"}
		}`))
	}))
	t.Cleanup(srv.Close)

	g := NewRegistry(registrar.NewClient(srv.URL))
	resp, err := g.handleLookup(context.Background(), DomainArgs{Domain: "coolstartup.com"})
	require.NoError(t, err)
	require.Len(t, resp.Content, 1)

	text := resp.Content[0].TextContent.Text
	assert.Contains(t, text, "Domain: coolstartup.com")
	assert.Contains(t, text, "Available: Yes")
	assert.Contains(t, text, "Purchase Price: $12.99/year")
}

func TestHandlePurchaseBackendFailureBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"domain just got registered"}`))
	}))
	t.Cleanup(srv.Close)

	g := NewRegistry(registrar.NewClient(srv.URL))
	resp, err := g.handlePurchase(context.Background(), DomainArgs{Domain: "coolstartup.com"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.EqualError(t, err, "domain just got registered")
}

func TestHandlePurchaseCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"method":"stripe","checkoutUrl":"https://checkout.stripe.com/pay/cs_1"}`))
	}))
	t.Cleanup(srv.Close)

	g := NewRegistry(registrar.NewClient(srv.URL))
	resp, err := g.handlePurchase(context.Background(), DomainArgs{Domain: "coolstartup.com"})
	require.NoError(t, err)

	text := resp.Content[0].TextContent.Text
	assert.Contains(t, text, "Checkout pending.")
	assert.Contains(t, text, "Complete your purchase: https://checkout.stripe.com/pay/cs_1")
}

func TestHandleAddRecordSendsOnlySuppliedFields(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"id":7,"host":"www","type":"A","answer":"1.2.3.4","ttl":300}`))
	}))
	t.Cleanup(srv.Close)

	g := NewRegistry(registrar.NewClient(srv.URL))
	resp, err := g.handleAddRecord(context.Background(), AddRecordArgs{
		Domain: "coolstartup.com",
		Token:  "lobster_tok",
		Host:   "www",
		Type:   "A",
		Answer: "1.2.3.4",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"host":"www","type":"A","answer":"1.2.3.4"}`, gotBody)
	text := resp.Content[0].TextContent.Text
	assert.Contains(t, text, "DNS record created.")
	assert.Contains(t, text, "[7] www A 1.2.3.4 TTL:300")
}

func TestHandleRecover(t *testing.T) {
	email := gofakeit.Email()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recover", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"If that address purchased a domain, the token was sent."}`))
	}))
	t.Cleanup(srv.Close)

	g := NewRegistry(registrar.NewClient(srv.URL))
	resp, err := g.handleRecover(context.Background(), RecoverArgs{Email: email})
	require.NoError(t, err)
	assert.Contains(t, resp.Content[0].TextContent.Text, "token was sent")
}
