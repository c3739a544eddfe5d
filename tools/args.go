package tools

// Argument structs for the catalog. The json tags define the wire names, the
// jsonschema tags the published schema, and the validate tags the
// pre-dispatch checks. Fields without omitempty are required; a required
// string or array that arrives empty counts as absent and fails validation
// before any network call.

// DomainArgs is shared by the unauthenticated domain operations.
type DomainArgs struct {
	Domain string `json:"domain" jsonschema:"description=The fully-qualified domain name to check" validate:"required"`
}

// ManageArgs is shared by the authenticated operations with no extra inputs.
type ManageArgs struct {
	Domain string `json:"domain" jsonschema:"description=The domain to manage" validate:"required"`
	Token  string `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
}

// RenewArgs renews a domain for an optional number of years.
type RenewArgs struct {
	Domain string `json:"domain" jsonschema:"description=The domain to renew" validate:"required"`
	Token  string `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	Years  *int   `json:"years,omitempty" jsonschema:"description=Number of years to renew for (registrar default when omitted)"`
}

// AddRecordArgs creates a DNS record. Use host "@" for the apex.
type AddRecordArgs struct {
	Domain   string `json:"domain" jsonschema:"description=The domain to add the record to" validate:"required"`
	Token    string `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	Host     string `json:"host" jsonschema:"description=The record host relative to the domain; use @ for the apex" validate:"required"`
	Type     string `json:"type" jsonschema:"description=The DNS record type,enum=A,enum=AAAA,enum=CNAME,enum=MX,enum=TXT,enum=NS,enum=SRV" validate:"required,oneof=A AAAA CNAME MX TXT NS SRV"`
	Answer   string `json:"answer" jsonschema:"description=The record value such as an IP address or hostname" validate:"required"`
	TTL      *int   `json:"ttl,omitempty" jsonschema:"description=Time-to-live in seconds (registrar default when omitted)"`
	Priority *int   `json:"priority,omitempty" jsonschema:"description=Priority for MX and SRV records"`
}

// UpdateRecordArgs updates an existing record. Only supplied fields are sent;
// omitted fields are left unchanged by the registrar.
type UpdateRecordArgs struct {
	Domain   string  `json:"domain" jsonschema:"description=The domain the record belongs to" validate:"required"`
	Token    string  `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	RecordID string  `json:"record_id" jsonschema:"description=The record id from list_dns_records" validate:"required"`
	Host     *string `json:"host,omitempty" jsonschema:"description=New record host; use @ for the apex"`
	Type     *string `json:"type,omitempty" jsonschema:"description=New record type,enum=A,enum=AAAA,enum=CNAME,enum=MX,enum=TXT,enum=NS,enum=SRV" validate:"omitempty,oneof=A AAAA CNAME MX TXT NS SRV"`
	Answer   *string `json:"answer,omitempty" jsonschema:"description=New record value"`
	TTL      *int    `json:"ttl,omitempty" jsonschema:"description=New time-to-live in seconds"`
	Priority *int    `json:"priority,omitempty" jsonschema:"description=New priority for MX and SRV records"`
}

// DeleteRecordArgs deletes a record by id.
type DeleteRecordArgs struct {
	Domain   string `json:"domain" jsonschema:"description=The domain the record belongs to" validate:"required"`
	Token    string `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	RecordID string `json:"record_id" jsonschema:"description=The record id from list_dns_records" validate:"required"`
}

// SetNameserversArgs replaces the full nameserver set.
type SetNameserversArgs struct {
	Domain      string   `json:"domain" jsonschema:"description=The domain to delegate" validate:"required"`
	Token       string   `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	Nameservers []string `json:"nameservers" jsonschema:"description=The complete nameserver set to delegate to" validate:"required,min=1,dive,required"`
}

// UpdateSettingsArgs changes domain settings. Only supplied settings are
// sent; an empty update is a legal no-op that echoes the current settings.
type UpdateSettingsArgs struct {
	Domain    string `json:"domain" jsonschema:"description=The domain to configure" validate:"required"`
	Token     string `json:"token" jsonschema:"description=The management token issued at purchase (starts with lobster_)" validate:"required"`
	Locked    *bool  `json:"locked,omitempty" jsonschema:"description=Enable or disable the registrar transfer lock"`
	Autorenew *bool  `json:"autorenew,omitempty" jsonschema:"description=Enable or disable automatic renewal"`
	Privacy   *bool  `json:"privacy,omitempty" jsonschema:"description=Enable or disable WHOIS privacy"`
}

// RecoverArgs requests the management token by email.
type RecoverArgs struct {
	Email string `json:"email" jsonschema:"description=The email address used at purchase" validate:"required"`
}
