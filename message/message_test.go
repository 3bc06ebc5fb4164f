package message

import (
	"encoding/json"
	"testing"
)

func TestNewEnvelopeID(t *testing.T) {
	cases := []struct {
		name   string
		id     any
		expect string
	}{
		{"no id", nil, `{"method":"ApierV2.GetAccount","params":[{"Tenant":"t"}]}`},
		{"empty string", "", `{"method":"ApierV2.GetAccount","params":[{"Tenant":"t"}]}`},
		{"zero", 0, `{"method":"ApierV2.GetAccount","params":[{"Tenant":"t"}]}`},
		{"number", 7, `{"method":"ApierV2.GetAccount","params":[{"Tenant":"t"}],"id":7}`},
		{"string", "req-1", `{"method":"ApierV2.GetAccount","params":[{"Tenant":"t"}],"id":"req-1"}`},
	}

	for _, tc := range cases {
		env := NewEnvelope("ApierV2.GetAccount", map[string]string{"Tenant": "t"}, tc.id)
		data, err := json.Marshal(env)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", tc.name, err)
		}
		if string(data) != tc.expect {
			t.Errorf("%s: got %s, want %s", tc.name, data, tc.expect)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		body    string
		message string
		ok      bool
	}{
		{`{"result":1}`, "", false},
		{`{"error":null}`, "", false},
		{`{"error":""}`, "", false},
		{`{"error":false}`, "", false},
		{`{"error":0}`, "", false},
		{`{"error":"insufficient funds"}`, "insufficient funds", true},
		{`{"error":{"code":3}}`, `{"code":3}`, true},
		{`{"error":42}`, "42", true},
	}

	for _, tc := range cases {
		var resp Response
		if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.body, err)
		}
		msg, ok := resp.ErrorMessage()
		if ok != tc.ok || msg != tc.message {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.body, msg, ok, tc.message, tc.ok)
		}
	}
}

func TestResultOrNull(t *testing.T) {
	var resp Response
	if got := string(resp.ResultOrNull()); got != "null" {
		t.Fatalf("expect null for missing result, got %s", got)
	}

	if err := json.Unmarshal([]byte(`{"result":[{"id":1},{"id":2}]}`), &resp); err != nil {
		t.Fatal(err)
	}
	if got := string(resp.ResultOrNull()); got != `[{"id":1},{"id":2}]` {
		t.Fatalf("unexpected result %s", got)
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []any{nil, "a", 1, int64(2), 3.5, json.Number("4")} {
		if !ValidID(id) {
			t.Errorf("expect %v (%T) to be valid", id, id)
		}
	}
	for _, id := range []any{true, []int{1}, map[string]int{}, struct{}{}} {
		if ValidID(id) {
			t.Errorf("expect %v (%T) to be invalid", id, id)
		}
	}
}
