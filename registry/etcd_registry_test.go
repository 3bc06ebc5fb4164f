package registry

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// Needs a live etcd: CGR_ETCD_ENDPOINTS=localhost:2379 go test ./registry
func TestRegisterAndDiscover(t *testing.T) {
	endpoints := os.Getenv("CGR_ETCD_ENDPOINTS")
	if endpoints == "" {
		t.Skip("CGR_ETCD_ENDPOINTS not set")
	}

	reg, err := NewEtcdRegistry(strings.Split(endpoints, ","), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inst1 := ServiceInstance{Addr: "http://127.0.0.1:2080/jsonrpc", Weight: 10, Version: "0.10"}
	inst2 := ServiceInstance{Addr: "http://127.0.0.1:2081/jsonrpc", Weight: 5, Version: "0.10"}

	if err := reg.Register(ctx, "cgrates-test", inst1, 10); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(ctx, "cgrates-test", inst2, 10); err != nil {
		t.Fatal(err)
	}
	defer reg.Deregister(context.Background(), "cgrates-test", inst2.Addr)

	instances, err := reg.Discover(ctx, "cgrates-test")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 {
		t.Fatalf("expect 2 instances, got %d", len(instances))
	}

	if err := reg.Deregister(ctx, "cgrates-test", inst1.Addr); err != nil {
		t.Fatal(err)
	}

	instances, err = reg.Discover(ctx, "cgrates-test")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 1 {
		t.Fatalf("expect 1 instance after deregister, got %d", len(instances))
	}
	if instances[0].Addr != inst2.Addr {
		t.Fatalf("expect %s, got %s", inst2.Addr, instances[0].Addr)
	}
}
