package oakhttp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"oakhttp.dev/go/server/internal/obs"
	"oakhttp.dev/go/server/oakhttp/internal/http1"
)

const (
	defaultAddr           = ":8080"
	defaultIdleTimeout    = 60 * time.Second
	defaultMaxHeaderBytes = 8 << 10
	defaultMaxBodyBytes   = 4 << 20
	defaultMaxRequests    = 5
)

// Server ties the decoder, route table, dispatcher and encoder to a TCP
// listener. Configure by setting fields before ListenAndServe; zero
// values get defaults. Routes must be registered before serving starts;
// the table is immutable afterwards and shared by all connections.
type Server struct {
	Addr string

	// ReadHeaderTimeout bounds reading the first request's head.
	// IdleTimeout bounds the wait for the next request on a kept-alive
	// connection; clients may lower it with Keep-Alive: timeout=.
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	WriteTimeout      time.Duration

	MaxHeaderBytes int
	MaxBodyBytes   int64
	// MaxRequests caps requests served per connection; clients may
	// lower it with Keep-Alive: max=. Zero means the default, negative
	// disables the cap.
	MaxRequests int

	Logger obs.Logger
	Meter  obs.Meter

	routes    *router
	started   atomic.Bool
	inflight  sync.WaitGroup
	closing   atomic.Bool
	mu        sync.Mutex
	listeners map[net.Listener]struct{}
	conns     map[net.Conn]struct{}
}

// NewServer returns a Server that will listen on hostname:port.
func NewServer(hostname string, port uint16) *Server {
	return &Server{Addr: net.JoinHostPort(hostname, strconv.Itoa(int(port)))}
}

func (s *Server) route() *router {
	if s.started.Load() {
		panic("oakhttp: route registered after serving started")
	}
	if s.routes == nil {
		s.routes = newRouter()
	}
	return s.routes
}

// On registers fn for every request whose path equals pattern,
// regardless of method.
func (s *Server) On(pattern string, fn HandlerFunc) {
	s.route().register(pattern, kindAny, "", fn)
}

// OnMethod registers fn for requests matching both pattern and method.
func (s *Server) OnMethod(method Method, pattern string, fn HandlerFunc) {
	s.route().register(pattern, kindSpecific, method, fn)
}

// OnGet is OnMethod with MethodGet.
func (s *Server) OnGet(pattern string, fn HandlerFunc) { s.OnMethod(MethodGet, pattern, fn) }

// OnHead is OnMethod with MethodHead.
func (s *Server) OnHead(pattern string, fn HandlerFunc) { s.OnMethod(MethodHead, pattern, fn) }

// OnPost is OnMethod with MethodPost.
func (s *Server) OnPost(pattern string, fn HandlerFunc) { s.OnMethod(MethodPost, pattern, fn) }

// OnPut is OnMethod with MethodPut.
func (s *Server) OnPut(pattern string, fn HandlerFunc) { s.OnMethod(MethodPut, pattern, fn) }

// OnDelete is OnMethod with MethodDelete.
func (s *Server) OnDelete(pattern string, fn HandlerFunc) { s.OnMethod(MethodDelete, pattern, fn) }

// OnDirectory registers fn for every request whose path extends pattern
// on a segment boundary. The longest registered prefix wins.
func (s *Server) OnDirectory(pattern string, fn HandlerFunc) {
	s.route().register(pattern, kindDirectory, "", fn)
}

// ListenAndServe listens on Addr (":8080" when empty) and serves.
func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = defaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l, handling each on its own goroutine.
// It returns nil after Shutdown closes the listener.
func (s *Server) Serve(l net.Listener) error {
	s.started.Store(true)
	if s.routes == nil {
		s.routes = newRouter()
	}
	s.trackListener(l, true)
	defer s.trackListener(l, false)
	for {
		c, err := l.Accept()
		if err != nil {
			if s.closing.Load() {
				return nil
			}
			return err
		}
		s.counter("oakhttp_conns_accepted", 1)
		s.inflight.Add(1)
		s.trackConn(c, true)
		go func() {
			defer s.inflight.Done()
			defer s.trackConn(c, false)
			s.serveConn(c)
		}()
	}
}

// Shutdown stops accepting, then waits for in-flight connections until
// ctx expires, at which point the stragglers are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)
	s.mu.Lock()
	for l := range s.listeners {
		l.Close()
	}
	s.mu.Unlock()
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()
		return ctx.Err()
	}
}

func (s *Server) trackListener(l net.Listener, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[net.Listener]struct{})
	}
	if add {
		s.listeners[l] = struct{}{}
	} else {
		delete(s.listeners, l)
	}
}

func (s *Server) trackConn(c net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		s.conns = make(map[net.Conn]struct{})
	}
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

// connState carries per-connection keep-alive bookkeeping. Limits start
// from the server configuration and may only shrink via Keep-Alive
// request parameters.
type connState struct {
	timeout     time.Duration
	maxRequests int
	served      int
}

// serveConn owns the full lifecycle of one connection: read, decode,
// dispatch, encode, repeat while keep-alive holds. A decode failure
// drops the connection with nothing written back.
func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	br := bufio.NewReader(c)
	bw := bufio.NewWriter(c)
	cs := &connState{timeout: s.idleTimeout(), maxRequests: s.maxRequests()}
	for {
		if cs.served == 0 && s.ReadHeaderTimeout > 0 {
			_ = c.SetReadDeadline(time.Now().Add(s.ReadHeaderTimeout))
		} else {
			_ = c.SetReadDeadline(time.Now().Add(cs.timeout))
		}
		rd := &http1.Reader{BR: br, MaxHeaderBytes: s.headerLimit(), MaxBodyBytes: s.bodyLimit()}
		req, err := decodeRequest(rd)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.counter("oakhttp_decode_errors", 1)
				s.logf(obs.Warn, "%s: decode failed: %v; dropping connection", c.RemoteAddr(), err)
			}
			return
		}
		req.remoteAddr = c.RemoteAddr().String()
		cs.served++
		keepAlive, err := s.negotiate(cs, req)
		if err != nil {
			s.counter("oakhttp_decode_errors", 1)
			s.logf(obs.Warn, "%s: %v; dropping connection", c.RemoteAddr(), err)
			return
		}
		resp := s.dispatch(req)
		s.counter("oakhttp_requests_served", 1, obs.Label{Key: "status", Value: resp.status.String()})
		if s.WriteTimeout > 0 {
			_ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
		}
		if err := encodeResponse(bw, resp, req.Method, keepAlive); err != nil {
			s.logf(obs.Warn, "%s: write failed: %v", c.RemoteAddr(), err)
			return
		}
		if err := bw.Flush(); err != nil {
			s.logf(obs.Warn, "%s: flush failed: %v", c.RemoteAddr(), err)
			return
		}
		if !keepAlive {
			return
		}
	}
}

// negotiate applies the request's connection headers: mandatory Host
// for HTTP/1.1, Connection close/keep-alive per protocol defaults, and
// the Keep-Alive timeout= and max= parameters. It reports whether the
// connection survives this exchange.
func (s *Server) negotiate(cs *connState, req *Request) (bool, error) {
	if req.Version.Minor >= 1 && !req.Headers.Has("Host") {
		return false, ErrMissingHost
	}
	// HTTP/1.1 defaults to keep-alive, HTTP/1.0 to close.
	keepAlive := req.Version.Minor >= 1
	if v, ok := req.Headers.Get("Connection"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "close":
			keepAlive = false
		case "keep-alive":
			keepAlive = true
		}
	}
	if v, ok := req.Headers.Get("Keep-Alive"); ok {
		if err := cs.applyKeepAlive(v); err != nil {
			return false, err
		}
	}
	if cs.maxRequests > 0 && cs.served >= cs.maxRequests {
		keepAlive = false
	}
	return keepAlive, nil
}

// applyKeepAlive parses "timeout=<s>, max=<n>". Parameters only ever
// tighten the current limits; unknown parameters are ignored, anything
// non-numeric is a connection error.
func (cs *connState) applyKeepAlive(v string) error {
	for _, param := range strings.Split(v, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		name, value, ok := strings.Cut(param, "=")
		if !ok {
			return ErrMalformedKeepAlive
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return ErrMalformedKeepAlive
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timeout":
			if d := time.Duration(n) * time.Second; d <= cs.timeout {
				cs.timeout = d
			}
		case "max":
			if cs.maxRequests <= 0 || n <= cs.maxRequests {
				cs.maxRequests = n
			}
		}
	}
	return nil
}

// dispatch resolves the winning handler and runs it against a fresh
// Response. No route yields 404; a handler error discards everything
// the handler wrote and yields 500. The returned Response is consumed.
func (s *Server) dispatch(req *Request) *Response {
	fn, prefix, ok := s.routes.resolve(req.Method, req.Target.Path())
	resp := newResponse(req.Version)
	if !ok {
		resp.status = StatusNotFound
		resp.consumed = true
		return resp
	}
	if prefix != "" {
		full := req.Target.Path()
		req.Target.TargetPath = prefix
		req.Target.RelativePath = full[len(prefix):]
	}
	start := time.Now()
	err := invoke(fn, req, resp)
	s.histogram("oakhttp_dispatch_seconds", time.Since(start).Seconds())
	if err != nil {
		s.counter("oakhttp_handler_errors", 1)
		s.logf(obs.Warn, "handler for %s %s failed: %v", req.Method, req.Target.Path(), err)
		resp = newResponse(req.Version)
		resp.status = StatusInternalServerError
	}
	resp.consumed = true
	return resp
}

// invoke runs fn and converts a panic into a handler error so one bad
// route cannot take down its connection's worker.
func invoke(fn HandlerFunc, req *Request, resp *Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oakhttp: handler panic: %v", r)
		}
	}()
	return fn(req, resp)
}

// encodeResponse serializes resp onto bw. The engine computes framing
// fields here: Content-Length always (except 204), Connection per the
// keep-alive decision, one Set-Cookie line per jar entry. Bodies are
// suppressed for HEAD, 1xx and 204 responses.
func encodeResponse(bw *bufio.Writer, resp *Response, method Method, keepAlive bool) error {
	fields := make([]http1.Field, 0, resp.headers.Len()+len(resp.cookies)+2)
	resp.headers.Each(func(name, value string) {
		fields = append(fields, http1.Field{Name: name, Value: value})
	})
	body := resp.body.Bytes()
	if resp.status != StatusNoContent {
		fields = append(fields, http1.Field{Name: "Content-Length", Value: strconv.Itoa(len(body))})
	}
	if keepAlive {
		fields = append(fields, http1.Field{Name: "Connection", Value: "keep-alive"})
	} else {
		fields = append(fields, http1.Field{Name: "Connection", Value: "close"})
	}
	for _, c := range resp.cookies {
		fields = append(fields, http1.Field{Name: "Set-Cookie", Value: c.String()})
	}
	if method == MethodHead || resp.status == StatusNoContent || (resp.status >= 100 && resp.status < 200) {
		body = nil
	}
	return http1.WriteResponse(bw, resp.Version.String(), int(resp.status), resp.status.Reason(), fields, body)
}

func (s *Server) idleTimeout() time.Duration {
	if s.IdleTimeout <= 0 {
		return defaultIdleTimeout
	}
	return s.IdleTimeout
}

func (s *Server) maxRequests() int {
	if s.MaxRequests == 0 {
		return defaultMaxRequests
	}
	if s.MaxRequests < 0 {
		return 0
	}
	return s.MaxRequests
}

func (s *Server) headerLimit() int {
	if s.MaxHeaderBytes <= 0 {
		return defaultMaxHeaderBytes
	}
	return s.MaxHeaderBytes
}

func (s *Server) bodyLimit() int64 {
	if s.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return s.MaxBodyBytes
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	lg := s.Logger
	if lg == nil {
		lg = obs.NopLogger{}
	}
	lg.Logf(level, format, args...)
}

func (s *Server) counter(name string, v float64, labels ...obs.Label) {
	m := s.Meter
	if m == nil {
		m = obs.NopMeter{}
	}
	m.Counter(name, v, labels...)
}

func (s *Server) histogram(name string, v float64, labels ...obs.Label) {
	m := s.Meter
	if m == nil {
		m = obs.NopMeter{}
	}
	m.Histogram(name, v, labels...)
}
