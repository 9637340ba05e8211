// Package lsp is a thin Language Server Protocol stub for WFL: it
// performs the initialize handshake and tracks open documents well
// enough to republish diagnostics on change, but does not implement
// completion, hover, or go-to-definition. Full editor tooling is out of
// scope; this exists so `wfl --lsp` has somewhere real to dispatch to.
package lsp

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/wfl-lang/wfl/compiler/analyzer"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
)

// Server is a WFL document-sync LSP server.
type Server struct {
	conn   jsonrpc2.Conn
	client protocol.Client
	logger *log.Logger

	mu            sync.Mutex
	documents     map[string]string
	workspaceRoot string

	capabilities protocol.ServerCapabilities
	cancel       context.CancelFunc
}

// NewServer builds a Server advertising only document sync and
// diagnostics publishing.
func NewServer() *Server {
	return &Server{
		logger:    log.New(os.Stderr, "[wfl-lsp] ", log.LstdFlags),
		documents: make(map[string]string),
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
	}
}

// Run starts the server over stdin/stdout and blocks until ctx is
// cancelled or the client sends exit.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("starting wfl language server")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		s.logger.Printf("warning: failed to create zap logger: %v", err)
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handler())
	<-ctx.Done()

	s.logger.Println("shutting down wfl language server")
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			if s.cancel != nil {
				s.cancel()
			}
			return reply(ctx, nil, nil)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleDidClose(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "bad initialize params"})
	}
	if len(params.WorkspaceFolders) > 0 {
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	} else if params.RootURI != "" {
		s.workspaceRoot = params.RootURI.Filename()
	}
	return reply(ctx, protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo:   &protocol.ServerInfo{Name: "wfl-lsp", Version: "0.1.0"},
	}, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "bad didOpen params"})
	}
	docURI := string(params.TextDocument.URI)
	s.mu.Lock()
	s.documents[docURI] = params.TextDocument.Text
	s.mu.Unlock()
	s.publishDiagnostics(ctx, docURI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "bad didChange params"})
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}
	docURI := string(params.TextDocument.URI)
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.mu.Lock()
	s.documents[docURI] = text
	s.mu.Unlock()
	s.publishDiagnostics(ctx, docURI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: "bad didClose params"})
	}
	docURI := string(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.documents, docURI)
	s.mu.Unlock()
	return reply(ctx, nil, nil)
}

// publishDiagnostics lexes, parses, and analyzes the document's current
// text, turning any lex/parse/semantic errors into LSP diagnostics. It
// does not run the type checker: a full diagnostics pipeline is out of
// scope for this stub.
func (s *Server) publishDiagnostics(ctx context.Context, docURI string) {
	s.mu.Lock()
	text := s.documents[docURI]
	s.mu.Unlock()

	var diags []protocol.Diagnostic
	tokens, lexErrs := lexer.Tokenize(text)
	for _, e := range lexErrs {
		diags = append(diags, diagnosticFor(e.Span.Line, e.Span.Column, e.Message))
	}
	if len(lexErrs) == 0 {
		if program, parseErrs := parser.New(tokens).Parse(); len(parseErrs) == 0 {
			for _, d := range analyzer.Analyze(program) {
				if d.Severity == analyzer.SeverityError {
					diags = append(diags, diagnosticFor(d.Location.Line, d.Location.Column, d.Message))
				}
			}
		} else {
			for _, e := range parseErrs {
				diags = append(diags, diagnosticFor(e.Location.Line, e.Location.Column, e.Message))
			}
		}
	}

	if s.client == nil {
		return
	}
	_ = s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(docURI),
		Diagnostics: diags,
	})
}

func diagnosticFor(line, col int, message string) protocol.Diagnostic {
	pos := protocol.Position{Line: uint32(line), Character: uint32(col)}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: protocol.DiagnosticSeverityError,
		Source:   "wfl",
		Message:  message,
	}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
