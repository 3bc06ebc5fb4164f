package client

// Option structs mirror the engine's argument objects field for field. They
// are sent as the single params element without renaming or defaulting;
// optional fields are omitted when unset.

// GetAccountsOptions selects a tenant's accounts, optionally by id and paged.
type GetAccountsOptions struct {
	Tenant     string
	AccountIds []string `json:",omitempty"`
	Offset     int      `json:",omitempty"`
	Limit      int      `json:",omitempty"`
}

// AccountOptions addresses a single account (GetAccount, RemoveAccount).
type AccountOptions struct {
	Tenant  string
	Account string
}

// SetAccountOptions creates or updates an account; unset flags stay as they are.
type SetAccountOptions struct {
	Tenant           string
	Account          string
	ActionPlanId     string `json:",omitempty"`
	ActionTriggersId string `json:",omitempty"`
	AllowNegative    *bool  `json:",omitempty"`
	Disabled         *bool  `json:",omitempty"`
	ReloadScheduler  *bool  `json:",omitempty"`
}

// SetBalanceOptions creates or updates a balance. Either BalanceId or
// BalanceUUID must be set; BalanceType is one of *sms, *mms, *generic,
// *data or *voice.
type SetBalanceOptions struct {
	Tenant         string
	Account        string
	BalanceId      string   `json:",omitempty"`
	BalanceUUID    string   `json:",omitempty"`
	BalanceType    string   `json:",omitempty"`
	Directions     string   `json:",omitempty"`
	Value          *float64 `json:",omitempty"`
	Weight         *float64 `json:",omitempty"`
	ExpiryTime     string   `json:",omitempty"`
	RatingSubject  string   `json:",omitempty"`
	Categories     string   `json:",omitempty"`
	DestinationIds string   `json:",omitempty"`
	TimingsIds     string   `json:",omitempty"`
	SharedGroups   string   `json:",omitempty"`
	Disabled       *bool    `json:",omitempty"`
	Overwrite      *bool    `json:",omitempty"`
	Blocker        *bool    `json:",omitempty"`
}

// BalanceValueOptions moves Value units into (AddBalance) or out of
// (DebitBalance) a balance. Value must be non-zero.
type BalanceValueOptions struct {
	Tenant      string
	Account     string
	BalanceId   string `json:",omitempty"`
	BalanceUUID string `json:",omitempty"`
	BalanceType string `json:",omitempty"`
	Value       float64
	Overwrite   *bool `json:",omitempty"`
}

// RemoveBalanceOptions addresses the balance to delete. A non-empty
// BalanceType must match the balance's type.
type RemoveBalanceOptions struct {
	Tenant      string
	Account     string
	BalanceId   string `json:",omitempty"`
	BalanceUUID string `json:",omitempty"`
	BalanceType string `json:",omitempty"`
}

// CDROptions is an externally rated call detail record. Only Tenant and
// Account are checked; everything else goes to the engine as given.
type CDROptions struct {
	TOR             string            `json:",omitempty"`
	AccId           string            `json:",omitempty"`
	CdrHost         string            `json:",omitempty"`
	CdrSource       string            `json:",omitempty"`
	ReqType         string            `json:",omitempty"`
	RequestType     string            `json:",omitempty"`
	Direction       string            `json:",omitempty"`
	Tenant          string            `json:"Tenant"`
	Category        string            `json:",omitempty"`
	Account         string            `json:"Account"`
	Subject         string            `json:",omitempty"`
	Destination     string            `json:",omitempty"`
	SetupTime       string            `json:",omitempty"`
	AnswerTime      string            `json:",omitempty"`
	Usage           string            `json:",omitempty"`
	PDD             string            `json:",omitempty"`
	Supplier        string            `json:",omitempty"`
	DisconnectCause string            `json:",omitempty"`
	Cost            *float64          `json:",omitempty"`
	ExtraFields     map[string]string `json:",omitempty"`
}
