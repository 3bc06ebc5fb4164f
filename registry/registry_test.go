package registry

import (
	"context"
	"testing"
)

func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()

	reg.Register(ctx, "cgrates", ServiceInstance{Addr: "http://b/jsonrpc", Weight: 1}, 0)
	reg.Register(ctx, "cgrates", ServiceInstance{Addr: "http://a/jsonrpc", Weight: 2}, 0)
	// Registering the same address twice replaces the entry.
	reg.Register(ctx, "cgrates", ServiceInstance{Addr: "http://a/jsonrpc", Weight: 3}, 0)

	instances, err := reg.Discover(ctx, "cgrates")
	if err != nil {
		t.Fatal(err)
	}
	if len(instances) != 2 {
		t.Fatalf("expect 2 instances, got %d", len(instances))
	}
	if instances[0].Addr != "http://a/jsonrpc" || instances[0].Weight != 3 {
		t.Fatalf("unexpected first instance %+v", instances[0])
	}

	reg.Deregister(ctx, "cgrates", "http://a/jsonrpc")
	instances, _ = reg.Discover(ctx, "cgrates")
	if len(instances) != 1 || instances[0].Addr != "http://b/jsonrpc" {
		t.Fatalf("unexpected instances after deregister %+v", instances)
	}

	instances, _ = reg.Discover(ctx, "unknown")
	if len(instances) != 0 {
		t.Fatalf("expect no instances for unknown service, got %d", len(instances))
	}
}
