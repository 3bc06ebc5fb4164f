package main

import (
	"bytes"
	"cgrates-rpc/enginetest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunAgainstEngine(t *testing.T) {
	engine, ts := enginetest.Start(zap.NewNop())
	defer ts.Close()

	code, out, errOut := runCLI(t, "-url", ts.URL, "set-account", `{"Tenant":"cgrates.org","Account":"1001"}`)
	if code != 0 {
		t.Fatalf("set-account exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != `"OK"` {
		t.Errorf("set-account output = %q", out)
	}

	code, _, errOut = runCLI(t, "-url", ts.URL, "-id", "7", "set-balance",
		`{"Tenant":"cgrates.org","Account":"1001","BalanceId":"main","BalanceType":"*monetary","Value":5}`)
	if code != 0 {
		t.Fatalf("set-balance exit %d: %s", code, errOut)
	}

	code, out, errOut = runCLI(t, "-url", ts.URL, "get-account", `{"Tenant":"cgrates.org","Account":"1001"}`)
	if code != 0 {
		t.Fatalf("get-account exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"ID": "cgrates.org:1001"`) {
		t.Errorf("get-account output missing account id:\n%s", out)
	}

	acc, ok := engine.Account("cgrates.org", "1001")
	if !ok || len(acc.BalanceMap["*monetary"]) != 1 {
		t.Fatalf("engine account = %+v", acc)
	}
}

func TestRunGenericCall(t *testing.T) {
	_, ts := enginetest.Start(zap.NewNop())
	defer ts.Close()

	code, out, errOut := runCLI(t, "-url", ts.URL, "call", "ApierV2.GetAccounts", `{"Tenant":"cgrates.org"}`)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}

func TestRunErrors(t *testing.T) {
	_, ts := enginetest.Start(zap.NewNop())
	defer ts.Close()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation",
			args:     []string{"-url", ts.URL, "get-account", `{"Account":"1001"}`},
			wantCode: 2,
			wantErr:  "Tenant is required",
		},
		{
			name:     "engine error",
			args:     []string{"-url", ts.URL, "get-account", `{"Tenant":"cgrates.org","Account":"nobody"}`},
			wantCode: 1,
			wantErr:  "engine error: NOT_FOUND",
		},
		{
			name:     "unknown command",
			args:     []string{"-url", ts.URL, "frobnicate"},
			wantCode: 1,
			wantErr:  `unknown command "frobnicate"`,
		},
		{
			name:     "bad params",
			args:     []string{"-url", ts.URL, "get-account", `{not json`},
			wantCode: 1,
			wantErr:  "params:",
		},
		{
			name:     "missing url",
			args:     []string{"-url", "", "get-account", `{}`},
			wantCode: 1,
			wantErr:  "URL is required",
		},
		{
			name:     "no command",
			args:     []string{"-url", ts.URL},
			wantCode: 2,
			wantErr:  "Commands:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CGR_URL", "")
			t.Setenv("CGR_ETCD_ENDPOINTS", "")
			code, _, errOut := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %q)", code, tt.wantCode, errOut)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id := parseID(""); id != nil {
		t.Errorf("parseID(\"\") = %v, want nil", id)
	}
	if id := parseID("42"); id != int64(42) {
		t.Errorf("parseID(42) = %#v", id)
	}
	if id := parseID("req-1"); id != "req-1" {
		t.Errorf("parseID(req-1) = %#v", id)
	}
	auto, ok := parseID("auto").(string)
	if !ok || len(auto) != 36 {
		t.Errorf("parseID(auto) = %#v, want a uuid", auto)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CGR_URL", "http://engine:2080/jsonrpc")
	t.Setenv("CGR_ETCD_ENDPOINTS", " a:2379, ,b:2379 ")
	t.Setenv("CGR_SERVICE", "")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.Engine.URL != "http://engine:2080/jsonrpc" {
		t.Errorf("URL = %q", cfg.Engine.URL)
	}
	if got := strings.Join(cfg.Discovery.Endpoints, ","); got != "a:2379,b:2379" {
		t.Errorf("endpoints = %q", got)
	}
	if cfg.Discovery.Service != "cgrates" || cfg.Discovery.Balancer != "roundrobin" {
		t.Errorf("defaults lost: %+v", cfg.Discovery)
	}
}
