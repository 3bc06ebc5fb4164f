package client

// SubmitCDR hands an externally rated call detail record to the engine's CDR
// server. Fetching and removing CDRs are not supported.
func (c *Client) SubmitCDR(opts CDROptions, id any) (*Call, error) {
	if err := validate(tenant(opts.Tenant), account(opts.Account)); err != nil {
		return nil, err
	}
	return c.newCall(MethodSubmitCDR, opts, id)
}
