package client

// SetBalance creates or updates a balance identified by BalanceId or BalanceUUID.
func (c *Client) SetBalance(opts SetBalanceOptions, id any) (*Call, error) {
	err := validate(
		tenant(opts.Tenant),
		account(opts.Account),
		balanceID(opts.BalanceId, opts.BalanceUUID),
	)
	if err != nil {
		return nil, err
	}
	return c.newCall(MethodSetBalance, opts, id)
}

// AddBalance tops up a balance by opts.Value.
func (c *Client) AddBalance(opts BalanceValueOptions, id any) (*Call, error) {
	if err := validateBalanceValue(opts); err != nil {
		return nil, err
	}
	return c.newCall(MethodAddBalance, opts, id)
}

// DebitBalance takes opts.Value out of a balance.
func (c *Client) DebitBalance(opts BalanceValueOptions, id any) (*Call, error) {
	if err := validateBalanceValue(opts); err != nil {
		return nil, err
	}
	return c.newCall(MethodDebitBalance, opts, id)
}

// RemoveBalance deletes the balance identified by BalanceId or BalanceUUID.
func (c *Client) RemoveBalance(opts RemoveBalanceOptions, id any) (*Call, error) {
	err := validate(
		tenant(opts.Tenant),
		account(opts.Account),
		balanceID(opts.BalanceId, opts.BalanceUUID),
	)
	if err != nil {
		return nil, err
	}
	return c.newCall(MethodRemoveBalance, opts, id)
}

func validateBalanceValue(opts BalanceValueOptions) error {
	return validate(
		tenant(opts.Tenant),
		account(opts.Account),
		balanceID(opts.BalanceId, opts.BalanceUUID),
		value(opts.Value),
	)
}
