package tools

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
	"github.com/lobsterdomains/mcp-server/mcp"
	"github.com/lobsterdomains/mcp-server/pkg/metricskey"
	"github.com/lobsterdomains/mcp-server/registrar"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server", "tools")

// McpServerRegistrator is the part of the MCP server the catalog needs.
type McpServerRegistrator interface {
	RegisterTool(name string, description string, handler any) error
}

// Registry binds the fixed tool catalog to a registrar client.
type Registry struct {
	client   *registrar.Client
	validate *validator.Validate
}

// NewRegistry creates a registry over the given client.
func NewRegistry(client *registrar.Client) *Registry {
	v := validator.New()
	// Report violations under the wire names the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Registry{
		client:   client,
		validate: v,
	}
}

// RegisterAll registers every catalog tool with the server. The switch is
// exhaustive over the Name enum; a name without a case is a startup error,
// not a silent omission.
func (g *Registry) RegisterAll(r McpServerRegistrator) error {
	for _, name := range AllNames {
		var handler any
		switch name {
		case LookupDomain:
			handler = g.handleLookup
		case GetQuote:
			handler = g.handleQuote
		case PurchaseDomain:
			handler = g.handlePurchase
		case GetDomainInfo:
			handler = g.handleDomainInfo
		case RenewDomain:
			handler = g.handleRenew
		case ListDNSRecords:
			handler = g.handleListRecords
		case AddDNSRecord:
			handler = g.handleAddRecord
		case UpdateDNSRecord:
			handler = g.handleUpdateRecord
		case DeleteDNSRecord:
			handler = g.handleDeleteRecord
		case GetNameservers:
			handler = g.handleGetNameservers
		case SetNameservers:
			handler = g.handleSetNameservers
		case GetSettings:
			handler = g.handleGetSettings
		case UpdateSettings:
			handler = g.handleUpdateSettings
		case UnlockDomain:
			handler = g.handleUnlock
		case GetTransferCode:
			handler = g.handleTransferCode
		case RecoverToken:
			handler = g.handleRecover
		default:
			return errors.Errorf("unknown tool: %s", name)
		}
		if err := r.RegisterTool(name.String(), name.Description(), handler); err != nil {
			return errors.WithMessagef(err, "failed to register tool %q", name)
		}
	}
	return nil
}

// check runs pre-dispatch validation. A violation means no network call is
// attempted for this invocation.
func (g *Registry) check(name Name, args any) error {
	err := g.validate.Struct(args)
	if err == nil {
		return nil
	}

	metricskey.StatsToolCallsInvalidArgs.IncrCounter(1, name.String())
	logger.KV(xlog.DEBUG, "tool", name, "reason", "invalid arguments")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required", "min":
			// An empty required string or array counts as absent.
			return errors.Errorf("missing required argument: %s", fe.Field())
		}
		return errors.Errorf("invalid argument: %s", fe.Field())
	}
	return errors.WithMessage(err, "invalid arguments")
}

func textResponse(text string) *mcp.ToolResponse {
	return mcp.NewToolResponse(mcp.NewTextContent(text))
}

func (g *Registry) handleLookup(ctx context.Context, args DomainArgs) (*mcp.ToolResponse, error) {
	if err := g.check(LookupDomain, args); err != nil {
		return nil, err
	}
	res, err := g.client.Lookup(ctx, args.Domain)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleQuote(ctx context.Context, args DomainArgs) (*mcp.ToolResponse, error) {
	if err := g.check(GetQuote, args); err != nil {
		return nil, err
	}
	res, err := g.client.Quote(ctx, args.Domain)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handlePurchase(ctx context.Context, args DomainArgs) (*mcp.ToolResponse, error) {
	if err := g.check(PurchaseDomain, args); err != nil {
		return nil, err
	}
	res, err := g.client.Purchase(ctx, args.Domain)
	if err != nil {
		return nil, err
	}
	// A backend-reported purchase failure is surfaced like any other error.
	if perr, ok := res.(*registrar.PurchaseError); ok {
		return nil, errors.New(perr.Message)
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleDomainInfo(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(GetDomainInfo, args); err != nil {
		return nil, err
	}
	res, err := g.client.DomainInfo(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleRenew(ctx context.Context, args RenewArgs) (*mcp.ToolResponse, error) {
	if err := g.check(RenewDomain, args); err != nil {
		return nil, err
	}
	res, err := g.client.Renew(ctx, args.Domain, args.Token, &registrar.RenewRequest{
		Years: args.Years,
	})
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleListRecords(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(ListDNSRecords, args); err != nil {
		return nil, err
	}
	res, err := g.client.ListRecords(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleAddRecord(ctx context.Context, args AddRecordArgs) (*mcp.ToolResponse, error) {
	if err := g.check(AddDNSRecord, args); err != nil {
		return nil, err
	}
	res, err := g.client.AddRecord(ctx, args.Domain, args.Token, &registrar.AddRecordRequest{
		Host:     args.Host,
		Type:     registrar.RecordType(args.Type),
		Answer:   args.Answer,
		TTL:      args.TTL,
		Priority: args.Priority,
	})
	if err != nil {
		return nil, err
	}
	return textResponse("DNS record created.\n" + res.String()), nil
}

func (g *Registry) handleUpdateRecord(ctx context.Context, args UpdateRecordArgs) (*mcp.ToolResponse, error) {
	if err := g.check(UpdateDNSRecord, args); err != nil {
		return nil, err
	}
	req := &registrar.UpdateRecordRequest{
		Host:     args.Host,
		Answer:   args.Answer,
		TTL:      args.TTL,
		Priority: args.Priority,
	}
	if args.Type != nil {
		rt := registrar.RecordType(*args.Type)
		req.Type = &rt
	}
	res, err := g.client.UpdateRecord(ctx, args.Domain, args.Token, args.RecordID, req)
	if err != nil {
		return nil, err
	}
	return textResponse("DNS record updated.\n" + res.String()), nil
}

func (g *Registry) handleDeleteRecord(ctx context.Context, args DeleteRecordArgs) (*mcp.ToolResponse, error) {
	if err := g.check(DeleteDNSRecord, args); err != nil {
		return nil, err
	}
	res, err := g.client.DeleteRecord(ctx, args.Domain, args.Token, args.RecordID)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleGetNameservers(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(GetNameservers, args); err != nil {
		return nil, err
	}
	res, err := g.client.Nameservers(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleSetNameservers(ctx context.Context, args SetNameserversArgs) (*mcp.ToolResponse, error) {
	if err := g.check(SetNameservers, args); err != nil {
		return nil, err
	}
	res, err := g.client.SetNameservers(ctx, args.Domain, args.Token, &registrar.SetNameserversRequest{
		Nameservers: args.Nameservers,
	})
	if err != nil {
		return nil, err
	}
	return textResponse("Nameservers updated.\n" + res.String()), nil
}

func (g *Registry) handleGetSettings(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(GetSettings, args); err != nil {
		return nil, err
	}
	res, err := g.client.Settings(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleUpdateSettings(ctx context.Context, args UpdateSettingsArgs) (*mcp.ToolResponse, error) {
	if err := g.check(UpdateSettings, args); err != nil {
		return nil, err
	}
	res, err := g.client.UpdateSettings(ctx, args.Domain, args.Token, &registrar.UpdateSettingsRequest{
		Locked:    args.Locked,
		Autorenew: args.Autorenew,
		Privacy:   args.Privacy,
	})
	if err != nil {
		return nil, err
	}
	return textResponse("Settings updated.\n" + res.String()), nil
}

func (g *Registry) handleUnlock(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(UnlockDomain, args); err != nil {
		return nil, err
	}
	res, err := g.client.Unlock(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleTransferCode(ctx context.Context, args ManageArgs) (*mcp.ToolResponse, error) {
	if err := g.check(GetTransferCode, args); err != nil {
		return nil, err
	}
	res, err := g.client.TransferCode(ctx, args.Domain, args.Token)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}

func (g *Registry) handleRecover(ctx context.Context, args RecoverArgs) (*mcp.ToolResponse, error) {
	if err := g.check(RecoverToken, args); err != nil {
		return nil, err
	}
	res, err := g.client.Recover(ctx, args.Email)
	if err != nil {
		return nil, err
	}
	return textResponse(res.String()), nil
}
