// Package loadbalance picks one engine endpoint out of the registered ones.
//
// A client's URL is fixed at construction, so a balancer is consulted once
// per client rather than once per call:
//   - RoundRobinBalancer:     spread successive clients evenly
//   - WeightedRandomBalancer: favour bigger engines by ServiceInstance.Weight
package loadbalance

import "cgrates-rpc/registry"

// Balancer is the interface for endpoint selection strategies.
type Balancer interface {
	// Pick selects one instance from the available list. Must be goroutine-safe.
	Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}

// ByName returns the balancer registered under name, or nil.
func ByName(name string) Balancer {
	switch name {
	case "roundrobin", "RoundRobin":
		return &RoundRobinBalancer{}
	case "weighted", "WeightedRandom":
		return &WeightedRandomBalancer{}
	}
	return nil
}
