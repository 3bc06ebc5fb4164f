package enginetest

type AttrGetAccounts struct {
	Tenant     string
	AccountIds []string
	Offset     int
	Limit      int
}

type AttrGetAccount struct {
	Tenant  string
	Account string
}

type AttrSetAccount struct {
	Tenant           string
	Account          string
	ActionPlanId     string
	ActionTriggersId string
	AllowNegative    *bool
	Disabled         *bool
	ReloadScheduler  *bool
}

type AttrRemoveAccount struct {
	Tenant  string
	Account string
}

type AttrSetBalance struct {
	Tenant        string
	Account       string
	BalanceId     string
	BalanceUUID   string
	BalanceType   string
	Directions    string
	Value         *float64
	Weight        *float64
	ExpiryTime    string
	RatingSubject string
	Categories    string
	SharedGroups  string
	Disabled      *bool
	Blocker       *bool
}

type AttrAddBalance struct {
	Tenant      string
	Account     string
	BalanceId   string
	BalanceUUID string
	BalanceType string
	Value       float64
	Overwrite   *bool
}

type AttrRemoveBalance struct {
	Tenant      string
	Account     string
	BalanceId   string
	BalanceUUID string
	BalanceType string
}

// ApierV2 serves the account methods.
type ApierV2 struct {
	e *Engine
}

func (a *ApierV2) GetAccounts(attr *AttrGetAccounts, reply *[]*Account) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	accounts := a.e.sortedAccounts(attr.Tenant, attr.AccountIds)
	offset := min(max(attr.Offset, 0), len(accounts))
	accounts = accounts[offset:]
	if attr.Limit > 0 && attr.Limit < len(accounts) {
		accounts = accounts[:attr.Limit]
	}
	if accounts == nil {
		accounts = []*Account{}
	}
	*reply = accounts
	return nil
}

func (a *ApierV2) GetAccount(attr *AttrGetAccount, reply *Account) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	acc, ok := a.e.accounts[accountKey(attr.Tenant, attr.Account)]
	if !ok {
		return ErrNotFound
	}
	*reply = *acc.clone()
	return nil
}

func (a *ApierV2) SetAccount(attr *AttrSetAccount, reply *string) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	key := accountKey(attr.Tenant, attr.Account)
	acc, ok := a.e.accounts[key]
	if !ok {
		acc = &Account{ID: key, BalanceMap: make(map[string][]*Balance)}
		a.e.accounts[key] = acc
	}
	if attr.ActionPlanId != "" {
		acc.ActionPlanId = attr.ActionPlanId
	}
	if attr.ActionTriggersId != "" {
		acc.ActionTriggersId = attr.ActionTriggersId
	}
	if attr.AllowNegative != nil {
		acc.AllowNegative = *attr.AllowNegative
	}
	if attr.Disabled != nil {
		acc.Disabled = *attr.Disabled
	}
	*reply = OK
	return nil
}

func (a *ApierV2) RemoveAccount(attr *AttrRemoveAccount, reply *string) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	key := accountKey(attr.Tenant, attr.Account)
	if _, ok := a.e.accounts[key]; !ok {
		return ErrNotFound
	}
	delete(a.e.accounts, key)
	*reply = OK
	return nil
}

// ApierV1 serves the balance methods.
type ApierV1 struct {
	e *Engine
}

func (a *ApierV1) account(tenant, account string) (*Account, error) {
	acc, ok := a.e.accounts[accountKey(tenant, account)]
	if !ok {
		return nil, ErrNotFound
	}
	return acc, nil
}

func (a *ApierV1) SetBalance(attr *AttrSetBalance, reply *string) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	acc, err := a.account(attr.Tenant, attr.Account)
	if err != nil {
		return err
	}
	b, err := acc.balance(attr.BalanceId, attr.BalanceUUID, attr.BalanceType)
	if err != nil {
		return err
	}
	if attr.Value != nil {
		b.Value = *attr.Value
	}
	if attr.Weight != nil {
		b.Weight = *attr.Weight
	}
	if attr.Directions != "" {
		b.Directions = attr.Directions
	}
	if attr.ExpiryTime != "" {
		b.ExpiryTime = attr.ExpiryTime
	}
	if attr.RatingSubject != "" {
		b.RatingSubject = attr.RatingSubject
	}
	if attr.Categories != "" {
		b.Categories = attr.Categories
	}
	if attr.SharedGroups != "" {
		b.SharedGroups = attr.SharedGroups
	}
	if attr.Disabled != nil {
		b.Disabled = *attr.Disabled
	}
	if attr.Blocker != nil {
		b.Blocker = *attr.Blocker
	}
	*reply = OK
	return nil
}

func (a *ApierV1) AddBalance(attr *AttrAddBalance, reply *string) error {
	return a.move(attr, attr.Value, reply)
}

// DebitBalance refuses to take a balance below zero unless the account
// allows negative balances.
func (a *ApierV1) DebitBalance(attr *AttrAddBalance, reply *string) error {
	return a.move(attr, -attr.Value, reply)
}

func (a *ApierV1) move(attr *AttrAddBalance, delta float64, reply *string) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	acc, err := a.account(attr.Tenant, attr.Account)
	if err != nil {
		return err
	}
	b, err := acc.balance(attr.BalanceId, attr.BalanceUUID, attr.BalanceType)
	if err != nil {
		return err
	}

	next := b.Value + delta
	if attr.Overwrite != nil && *attr.Overwrite {
		next = delta
	}
	if next < 0 && !acc.AllowNegative {
		return ErrInsufficientFunds
	}
	b.Value = next
	*reply = OK
	return nil
}

func (a *ApierV1) RemoveBalances(attr *AttrRemoveBalance, reply *string) error {
	a.e.mu.Lock()
	defer a.e.mu.Unlock()

	acc, err := a.account(attr.Tenant, attr.Account)
	if err != nil {
		return err
	}
	typ, i := acc.findBalance(attr.BalanceId, attr.BalanceUUID)
	if i < 0 || (attr.BalanceType != "" && attr.BalanceType != typ) {
		return ErrNotFound
	}
	acc.BalanceMap[typ] = append(acc.BalanceMap[typ][:i], acc.BalanceMap[typ][i+1:]...)
	if len(acc.BalanceMap[typ]) == 0 {
		delete(acc.BalanceMap, typ)
	}
	*reply = OK
	return nil
}

// CdrsV2 serves CDR submission.
type CdrsV2 struct {
	e *Engine
}

func (c *CdrsV2) ProcessExternalCdr(cdr *ExternalCDR, reply *string) error {
	c.e.mu.Lock()
	defer c.e.mu.Unlock()

	c.e.cdrs = append(c.e.cdrs, *cdr)
	*reply = OK
	return nil
}
