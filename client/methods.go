package client

// Engine methods. Names follow the engine's current API; check them against
// the deployed version, older engines expose SetBalance under ApierV2.
const (
	MethodGetAccounts   = "ApierV2.GetAccounts"
	MethodGetAccount    = "ApierV2.GetAccount"
	MethodSetAccount    = "ApierV2.SetAccount"
	MethodRemoveAccount = "ApierV2.RemoveAccount"
	MethodSetBalance    = "ApierV1.SetBalance"
	MethodAddBalance    = "ApierV1.AddBalance"
	MethodDebitBalance  = "ApierV1.DebitBalance"
	MethodRemoveBalance = "ApierV1.RemoveBalances"
	MethodSubmitCDR     = "CdrsV2.ProcessExternalCdr"
)

// Required field names, as reported in ValidationError.Field.
const (
	FieldTenant    = "Tenant"
	FieldAccount   = "Account"
	FieldBalanceID = "BalanceId or BalanceUUID"
	FieldValue     = "Value"
)

// requirement is one presence check; checks run in order and the first
// missing field is reported.
type requirement struct {
	field   string
	present bool
}

func validate(reqs ...requirement) error {
	for _, r := range reqs {
		if !r.present {
			return required(r.field)
		}
	}
	return nil
}

func tenant(v string) requirement {
	return requirement{FieldTenant, v != ""}
}

func account(v string) requirement {
	return requirement{FieldAccount, v != ""}
}

func balanceID(id, uuid string) requirement {
	return requirement{FieldBalanceID, id != "" || uuid != ""}
}

func value(v float64) requirement {
	return requirement{FieldValue, v != 0}
}
