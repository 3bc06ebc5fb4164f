package main

import (
	"cgrates-rpc/client"
	"cgrates-rpc/enginetest"
	"cgrates-rpc/loadbalance"
	"cgrates-rpc/middleware"
	"cgrates-rpc/registry"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// command decodes its JSON argument into the operation's options and
// prepares the call.
type command func(c *client.Client, params []byte, id any) (*client.Call, error)

func typed[T any](op func(*client.Client, T, any) (*client.Call, error)) command {
	return func(c *client.Client, params []byte, id any) (*client.Call, error) {
		var opts T
		if err := json.Unmarshal(params, &opts); err != nil {
			return nil, fmt.Errorf("params: %w", err)
		}
		return op(c, opts, id)
	}
}

var commands = map[string]command{
	"get-accounts":   typed((*client.Client).GetAccounts),
	"get-account":    typed((*client.Client).GetAccount),
	"set-account":    typed((*client.Client).SetAccount),
	"remove-account": typed((*client.Client).RemoveAccount),
	"set-balance":    typed((*client.Client).SetBalance),
	"add-balance":    typed((*client.Client).AddBalance),
	"debit-balance":  typed((*client.Client).DebitBalance),
	"remove-balance": typed((*client.Client).RemoveBalance),
	"submit-cdr":     typed((*client.Client).SubmitCDR),
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "cgrctl [options] <command> '<json params>'")
	fmt.Fprintln(w, "cgrctl [options] call <Service.Method> '<json params>'")
	fmt.Fprintln(w, "cgrctl fake-engine [-listen addr] [-announce url]")
	fmt.Fprintf(w, "Commands: %v\n", names)
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := DefaultConfig()
	applyEnv(&cfg)

	fs := flag.NewFlagSet("cgrctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Engine.URL, "url", cfg.Engine.URL, "engine JSON-RPC URL")
	etcd := fs.String("etcd", "", "comma-separated etcd endpoints for engine discovery")
	fs.StringVar(&cfg.Discovery.Service, "service", cfg.Discovery.Service, "service name to discover")
	fs.StringVar(&cfg.Discovery.Balancer, "balancer", cfg.Discovery.Balancer, "roundrobin or weighted")
	fs.DurationVar(&cfg.Transport.Timeout, "timeout", cfg.Transport.Timeout, "per-call timeout (0 = none)")
	fs.Float64Var(&cfg.Transport.RateLimit, "rate", cfg.Transport.RateLimit, "max calls per second (0 = unlimited)")
	fs.IntVar(&cfg.Transport.Burst, "burst", cfg.Transport.Burst, "rate limiter burst")
	idFlag := fs.String("id", "", "request id: a number, a string, or 'auto'")
	verbose := fs.Bool("verbose", false, "debug logging")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *etcd != "" {
		cfg.Discovery.Endpoints = splitList(*etcd)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync()

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}
	if rest[0] == "fake-engine" {
		return runFakeEngine(rest[1:], cfg, logger, stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newClient(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	call, err := prepare(c, rest, parseID(*idFlag))
	if err != nil {
		fmt.Fprintln(stderr, err)
		var ve *client.ValidationError
		if errors.As(err, &ve) {
			return 2
		}
		return 1
	}

	result, err := call.Do(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kind(err), err)
		return 1
	}

	var pretty any
	if err := json.Unmarshal(result, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		result = out
	}
	fmt.Fprintln(stdout, string(result))
	return 0
}

func prepare(c *client.Client, rest []string, id any) (*client.Call, error) {
	if rest[0] == "call" {
		if len(rest) < 2 {
			return nil, errors.New("call: method is required")
		}
		var params any = map[string]any{}
		if len(rest) > 2 {
			if err := json.Unmarshal([]byte(rest[2]), &params); err != nil {
				return nil, fmt.Errorf("params: %w", err)
			}
		}
		return c.Call(rest[1], params, id)
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", rest[0])
	}
	params := []byte("{}")
	if len(rest) > 1 {
		params = []byte(rest[1])
	}
	return cmd(c, params, id)
}

func newClient(ctx context.Context, cfg Config, logger *zap.Logger) (*client.Client, error) {
	var mws []middleware.Middleware
	if cfg.Transport.RateLimit > 0 {
		mws = append(mws, middleware.RateLimitMiddleware(cfg.Transport.RateLimit, cfg.Transport.Burst))
	}
	if cfg.Transport.Timeout > 0 {
		mws = append(mws, middleware.TimeOutMiddleware(cfg.Transport.Timeout))
	}
	opts := []client.Option{client.WithLogger(logger), client.WithMiddleware(mws...)}

	if cfg.Engine.URL != "" || len(cfg.Discovery.Endpoints) == 0 {
		return client.New(cfg.Engine.URL, opts...)
	}

	bal := loadbalance.ByName(cfg.Discovery.Balancer)
	if bal == nil {
		return nil, fmt.Errorf("unknown balancer %q", cfg.Discovery.Balancer)
	}
	reg, err := registry.NewEtcdRegistry(cfg.Discovery.Endpoints, logger)
	if err != nil {
		return nil, err
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.NewFromRegistry(ctx, reg, bal, cfg.Discovery.Service, opts...)
}

func runFakeEngine(args []string, cfg Config, logger *zap.Logger, stderr io.Writer) int {
	fs := flag.NewFlagSet("fake-engine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	listen := fs.String("listen", "127.0.0.1:2080", "listen address")
	announce := fs.String("announce", "", "URL to register in etcd (requires -etcd)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	svr, err := enginetest.NewServer(enginetest.NewEngine(), logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *announce != "" && len(cfg.Discovery.Endpoints) > 0 {
		reg, err := registry.NewEtcdRegistry(cfg.Discovery.Endpoints, logger)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer reg.Close()
		if err := svr.Announce(ctx, reg, cfg.Discovery.Service, registry.ServiceInstance{Addr: *announce, Weight: 1}, 10); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("fake engine listening", zap.String("addr", ln.Addr().String()))
	if err := svr.Serve(ln); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// parseID turns the -id flag into an envelope id: numbers stay numbers,
// "auto" becomes a random UUID.
func parseID(s string) any {
	switch {
	case s == "":
		return nil
	case s == "auto":
		return uuid.NewString()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

func kind(err error) string {
	var (
		te *client.TransportError
		pe *client.ProtocolError
		ae *client.ApplicationError
	)
	switch {
	case errors.As(err, &te):
		return "transport error"
	case errors.As(err, &pe):
		return fmt.Sprintf("engine returned HTTP %d", pe.StatusCode)
	case errors.As(err, &ae):
		return "engine error"
	}
	return "error"
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}
