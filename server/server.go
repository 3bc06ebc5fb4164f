// Package server serves JSON-RPC over HTTP in the engine's dialect.
//
// Request processing:
//
//	POST body → codec.Decode(message.Request) → "Service.Method" lookup
//	  → decode params[0] into *Args → reflect.Call(rcvr, args, reply)
//	  → message.Reply{id, result, error} with status 200
//
// Business errors travel in the reply's error member; only transport-level
// problems (wrong verb, unreadable body) change the HTTP status.
package server

import (
	"cgrates-rpc/codec"
	"cgrates-rpc/message"
	"cgrates-rpc/registry"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Server dispatches JSON-RPC calls to registered receivers. Register all
// services before serving.
type Server struct {
	serviceMap map[string]*service
	codec      codec.Codec
	logger     *zap.Logger

	mu        sync.Mutex
	http      *http.Server
	registry  registry.Registry
	announced []announcement
}

type announcement struct {
	service string
	addr    string
}

// NewServer creates a server with no services. A nil logger disables logging.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		serviceMap: make(map[string]*service),
		codec:      codec.Default,
		logger:     logger,
	}
}

// Register exposes rcvr's methods as "TypeName.Method".
func (svr *Server) Register(rcvr any) error {
	return svr.RegisterName("", rcvr)
}

// RegisterName exposes rcvr's methods as "name.Method".
func (svr *Server) RegisterName(name string, rcvr any) error {
	svc, err := newService(name, rcvr)
	if err != nil {
		return err
	}
	if _, dup := svr.serviceMap[svc.name]; dup {
		return fmt.Errorf("rpc: service already defined: %s", svc.name)
	}
	svr.serviceMap[svc.name] = svc
	return nil
}

func (svr *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req message.Request
	if err := svr.codec.Decode(body, &req); err != nil {
		http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, callErr := svr.dispatch(&req)
	reply := message.Reply{ID: req.ID, Result: result}
	if callErr != nil {
		reply.Error = callErr.Error()
		reply.Result = nil
	}
	svr.logger.Debug("rpc call",
		zap.String("method", req.Method),
		zap.ByteString("id", req.ID),
		zap.Duration("duration", time.Since(start)),
		zap.NamedError("callError", callErr),
	)

	out, err := svr.codec.Encode(reply)
	if err != nil {
		svr.logger.Error("failed to encode reply", zap.String("method", req.Method), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", svr.codec.ContentType())
	w.Write(out)
}

// dispatch resolves "Service.Method", decodes the single param into the
// method's argument type and invokes it.
func (svr *Server) dispatch(req *message.Request) (any, error) {
	serviceName, methodName, ok := strings.Cut(req.Method, ".")
	if !ok || serviceName == "" || methodName == "" {
		return nil, fmt.Errorf("rpc: service/method request ill-formed: %s", req.Method)
	}

	svc := svr.serviceMap[serviceName]
	if svc == nil {
		return nil, fmt.Errorf("rpc: can't find service %s", req.Method)
	}
	method := svc.method[methodName]
	if method == nil {
		return nil, fmt.Errorf("rpc: can't find method %s", req.Method)
	}
	if len(req.Params) != 1 {
		return nil, errors.New("rpc: params must contain exactly one element")
	}

	argv := reflect.New(method.ArgType)
	replyv := reflect.New(method.ReplyType)

	if err := svr.codec.Decode(req.Params[0], argv.Interface()); err != nil {
		return nil, err
	}

	if err := svc.call(method, argv, replyv); err != nil {
		return nil, err
	}
	return replyv.Interface(), nil
}

// Serve accepts connections on ln until Shutdown is called.
func (svr *Server) Serve(ln net.Listener) error {
	svr.mu.Lock()
	svr.http = &http.Server{Handler: svr}
	hs := svr.http
	svr.mu.Unlock()

	err := hs.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Announce registers this server under serviceName so clients can discover
// it. Announced entries are removed again by Shutdown.
func (svr *Server) Announce(ctx context.Context, reg registry.Registry, serviceName string, instance registry.ServiceInstance, ttl int64) error {
	if err := reg.Register(ctx, serviceName, instance, ttl); err != nil {
		return err
	}
	svr.mu.Lock()
	svr.registry = reg
	svr.announced = append(svr.announced, announcement{service: serviceName, addr: instance.Addr})
	svr.mu.Unlock()
	return nil
}

// Shutdown deregisters first, so clients stop picking this server, then
// waits for in-flight requests until ctx ends.
func (svr *Server) Shutdown(ctx context.Context) error {
	svr.mu.Lock()
	reg, announced, hs := svr.registry, svr.announced, svr.http
	svr.announced = nil
	svr.mu.Unlock()

	var errs []error
	for _, a := range announced {
		if err := reg.Deregister(ctx, a.service, a.addr); err != nil {
			errs = append(errs, err)
		}
	}
	if hs != nil {
		if err := hs.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
