package resource

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wfl-lang/wfl/runtime/value"
)

// Request is one inbound HTTP request queued for `wait for request
// comes in on server`. It stays open (the underlying ResponseWriter is
// not yet written to) until Respond is called.
type Request struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string

	server    *Server
	w         http.ResponseWriter
	httpReq   *http.Request
	done      chan struct{}
	responded bool
	respondMu sync.Mutex
}

// Raw exposes the underlying ResponseWriter/Request pair so Upgrade
// can switch the connection to a WebSocket before any ordinary
// Respond has written an HTTP response over it.
func (r *Request) Raw() (http.ResponseWriter, *http.Request) {
	return r.w, r.httpReq
}

// Respond writes status (defaulting to 200), contentType (if
// non-empty), and body to the underlying connection, then unblocks
// whatever is waiting on this request.
func (r *Request) Respond(body string, status int, contentType string) {
	r.respondMu.Lock()
	defer r.respondMu.Unlock()
	if r.responded {
		return
	}
	r.responded = true
	if contentType != "" {
		r.w.Header().Set("Content-Type", contentType)
	}
	if status == 0 {
		status = http.StatusOK
	}
	r.w.WriteHeader(status)
	io.WriteString(r.w, body)
	r.server.forget(r)
	close(r.done)
}

// Server is a live `listen on port N as server` handle: a chi router
// bound to an address, pushing every inbound request onto a channel
// for `wait for request comes in on server` to consume one at a time.
type Server struct {
	router   chi.Router
	httpSrv  *http.Server
	requests chan *Request

	mu      sync.Mutex
	pending map[*Request]bool
}

// Listen binds a router to bindAddress:port and starts serving in the
// background, per SPEC_FULL.md §6.2.
func Listen(bindAddress string, port int) (*value.Resource, *Server, error) {
	router := chi.NewRouter()
	srv := &Server{
		router:   router,
		requests: make(chan *Request, 64),
		pending:  make(map[*Request]bool),
	}
	router.HandleFunc("/*", srv.handle)

	addr := fmt.Sprintf("%s:%d", bindAddress, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	srv.httpSrv = &http.Server{Addr: addr, Handler: router}
	go srv.httpSrv.Serve(ln)

	res := &value.Resource{KindName: "server", ID: nextID(), Closer: srv.Close}
	return res, srv, nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	req := &Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Body:    string(body),
		Headers: headers,
		server:  s,
		w:       w,
		httpReq: r,
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	s.pending[req] = true
	s.mu.Unlock()

	s.requests <- req
	<-req.done
}

func (s *Server) forget(req *Request) {
	s.mu.Lock()
	delete(s.pending, req)
	s.mu.Unlock()
}

// Accept blocks for the next queued request, the backing mechanism for
// `wait for request comes in on server`.
func (s *Server) Accept(ctx context.Context) (*Request, error) {
	select {
	case req := <-s.requests:
		return req, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Router exposes the underlying chi.Router so websocket upgrades and
// other advanced handlers can register against it directly.
func (s *Server) Router() chi.Router { return s.router }

// Close responds 500 to every still-pending request and shuts the
// HTTP server down gracefully, per spec.md's "unresponded requests
// are closed with HTTP 500 at server shutdown" rule.
func (s *Server) Close() error {
	s.mu.Lock()
	for req := range s.pending {
		req.w.WriteHeader(http.StatusInternalServerError)
		close(req.done)
	}
	s.pending = make(map[*Request]bool)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
