package main

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Engine struct {
		URL string
	}
	Discovery struct {
		Endpoints []string // etcd endpoints; used when Engine.URL is empty
		Service   string
		Balancer  string
	}
	Transport struct {
		Timeout   time.Duration
		RateLimit float64 // calls per second, 0 disables
		Burst     int
	}
	Logging struct {
		Level string
	}
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.Discovery.Service = "cgrates"
	cfg.Discovery.Balancer = "roundrobin"
	cfg.Transport.Burst = 1
	cfg.Logging.Level = "info"
	return cfg
}

// applyEnv overrides cfg from CGR_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CGR_URL"); v != "" {
		cfg.Engine.URL = v
	}
	if v := os.Getenv("CGR_ETCD_ENDPOINTS"); v != "" {
		cfg.Discovery.Endpoints = splitList(v)
	}
	if v := os.Getenv("CGR_SERVICE"); v != "" {
		cfg.Discovery.Service = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
