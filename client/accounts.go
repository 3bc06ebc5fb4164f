package client

// GetAccounts lists the accounts of a tenant, optionally narrowed to
// AccountIds and paged with Offset/Limit.
func (c *Client) GetAccounts(opts GetAccountsOptions, id any) (*Call, error) {
	if err := validate(tenant(opts.Tenant)); err != nil {
		return nil, err
	}
	return c.newCall(MethodGetAccounts, opts, id)
}

// GetAccount fetches one account with its balances.
func (c *Client) GetAccount(opts AccountOptions, id any) (*Call, error) {
	if err := validate(tenant(opts.Tenant), account(opts.Account)); err != nil {
		return nil, err
	}
	return c.newCall(MethodGetAccount, opts, id)
}

// SetAccount creates the account or updates it in place.
func (c *Client) SetAccount(opts SetAccountOptions, id any) (*Call, error) {
	if err := validate(tenant(opts.Tenant), account(opts.Account)); err != nil {
		return nil, err
	}
	return c.newCall(MethodSetAccount, opts, id)
}

// RemoveAccount deletes the account and its balances.
func (c *Client) RemoveAccount(opts AccountOptions, id any) (*Call, error) {
	if err := validate(tenant(opts.Tenant), account(opts.Account)); err != nil {
		return nil, err
	}
	return c.newCall(MethodRemoveAccount, opts, id)
}
