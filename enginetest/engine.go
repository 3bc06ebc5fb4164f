// Package enginetest is an in-memory stand-in for the billing engine's
// JSON-RPC API. It implements the account, balance and CDR methods the
// client uses, with the engine's argument shapes and error strings, and
// serves them through server.Server.
package enginetest

import (
	"cgrates-rpc/server"
	"errors"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const OK = "OK"

var (
	ErrNotFound          = errors.New("NOT_FOUND")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceType       = errors.New("MANDATORY_IE_MISSING: [BalanceType]")
)

type Balance struct {
	ID            string
	Uuid          string
	Value         float64
	Weight        float64
	Directions    string `json:",omitempty"`
	ExpiryTime    string `json:",omitempty"`
	RatingSubject string `json:",omitempty"`
	Categories    string `json:",omitempty"`
	SharedGroups  string `json:",omitempty"`
	Disabled      bool
	Blocker       bool
}

type Account struct {
	ID               string // "tenant:account"
	BalanceMap       map[string][]*Balance
	ActionPlanId     string `json:",omitempty"`
	ActionTriggersId string `json:",omitempty"`
	AllowNegative    bool
	Disabled         bool
}

func (a *Account) clone() *Account {
	c := *a
	c.BalanceMap = make(map[string][]*Balance, len(a.BalanceMap))
	for typ, balances := range a.BalanceMap {
		for _, b := range balances {
			bc := *b
			c.BalanceMap[typ] = append(c.BalanceMap[typ], &bc)
		}
	}
	return &c
}

// findBalance looks a balance up by id or uuid across all balance types.
func (a *Account) findBalance(id, uid string) (string, int) {
	for typ, balances := range a.BalanceMap {
		for i, b := range balances {
			if (id != "" && b.ID == id) || (uid != "" && b.Uuid == uid) {
				return typ, i
			}
		}
	}
	return "", -1
}

// balance returns the matching balance, creating one of balanceType when
// none exists yet.
func (a *Account) balance(id, uid, balanceType string) (*Balance, error) {
	if typ, i := a.findBalance(id, uid); i >= 0 {
		return a.BalanceMap[typ][i], nil
	}
	if balanceType == "" {
		return nil, ErrBalanceType
	}
	if uid == "" {
		uid = uuid.NewString()
	}
	if id == "" {
		id = uid
	}
	b := &Balance{ID: id, Uuid: uid}
	a.BalanceMap[balanceType] = append(a.BalanceMap[balanceType], b)
	return b, nil
}

// ExternalCDR is a call detail record as accepted by CdrsV2.ProcessExternalCdr.
type ExternalCDR struct {
	TOR             string
	AccId           string
	CdrHost         string
	CdrSource       string
	ReqType         string
	RequestType     string
	Direction       string
	Tenant          string
	Category        string
	Account         string
	Subject         string
	Destination     string
	SetupTime       string
	AnswerTime      string
	Usage           string
	PDD             string
	Supplier        string
	DisconnectCause string
	Cost            *float64
	ExtraFields     map[string]string
}

// Engine holds accounts and CDRs. All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	accounts map[string]*Account
	cdrs     []ExternalCDR
}

func NewEngine() *Engine {
	return &Engine{accounts: make(map[string]*Account)}
}

func accountKey(tenant, account string) string {
	return tenant + ":" + account
}

// Account returns a snapshot of one account.
func (e *Engine) Account(tenant, account string) (*Account, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	acc, ok := e.accounts[accountKey(tenant, account)]
	if !ok {
		return nil, false
	}
	return acc.clone(), true
}

// CDRs returns every record submitted so far, oldest first.
func (e *Engine) CDRs() []ExternalCDR {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ExternalCDR(nil), e.cdrs...)
}

func (e *Engine) sortedAccounts(tenant string, ids []string) []*Account {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*Account
	for key, acc := range e.accounts {
		name, ok := strings.CutPrefix(key, tenant+":")
		if !ok || (len(ids) > 0 && !want[name]) {
			continue
		}
		out = append(out, acc.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewServer exposes e as ApierV1, ApierV2 and CdrsV2.
func NewServer(e *Engine, logger *zap.Logger) (*server.Server, error) {
	svr := server.NewServer(logger)
	for _, rcvr := range []any{&ApierV1{e: e}, &ApierV2{e: e}, &CdrsV2{e: e}} {
		if err := svr.Register(rcvr); err != nil {
			return nil, err
		}
	}
	return svr, nil
}

// Start runs a fresh engine on a local httptest server. Callers close the
// returned server when done.
func Start(logger *zap.Logger) (*Engine, *httptest.Server) {
	e := NewEngine()
	svr, err := NewServer(e, logger)
	if err != nil {
		panic(err)
	}
	return e, httptest.NewServer(svr)
}
