package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

// Config describes how the server identifies itself and parses documents.
type Config struct {
	ServerName   string
	Version      string
	LanguageID   string
	ContextLines int
}

// LSPServer publishes parse diagnostics and document symbols for notation files.
type LSPServer struct {
	config        Config
	mu            sync.RWMutex
	openDocuments map[protocol.DocumentURI]*Document
	logger        *zap.Logger
	shutdown      bool
}

// Document tracks an open file from the editor.
type Document struct {
	URI        protocol.DocumentURI
	LanguageID string
	Version    int32
	Text       string

	// lastGood is the most recent version that parsed cleanly.
	lastGood *nodelang.Graph
	lastErr  error
}

// NewLSPServer builds a server instance.
func NewLSPServer(config Config, logger *zap.Logger) *LSPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ServerName == "" {
		config.ServerName = "nodelang-lsp"
	}
	return &LSPServer{
		config:        config,
		openDocuments: make(map[protocol.DocumentURI]*Document),
		logger:        logger,
	}
}

// Serve runs the JSON-RPC loop over rwc until the client disconnects, sends
// exit, or ctx is cancelled.
func (s *LSPServer) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

func (s *LSPServer) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.logger.Debug("lsp request", zap.String("method", req.Method), zap.Bool("notification", req.Notif))
	if s.isShutdown() && req.Method != "exit" {
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}
	switch req.Method {
	case "initialize":
		return s.initialize()
	case "initialized":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil
	case "exit":
		return nil, conn.Close()
	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if lang := string(params.TextDocument.LanguageID); s.config.LanguageID != "" && lang != s.config.LanguageID {
			s.logger.Warn("unexpected language id", zap.String("uri", string(params.TextDocument.URI)), zap.String("language_id", lang))
		}
		doc := s.DidOpen(params.TextDocument.URI, string(params.TextDocument.LanguageID), int32(params.TextDocument.Version), params.TextDocument.Text)
		return nil, s.publish(ctx, conn, doc)
	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		if len(params.ContentChanges) == 0 {
			return nil, nil
		}
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		doc, err := s.DidChange(params.TextDocument.URI, int32(params.TextDocument.Version), text)
		if err != nil {
			return nil, err
		}
		return nil, s.publish(ctx, conn, doc)
	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		s.DidClose(params.TextDocument.URI)
		return nil, conn.Notify(ctx, "textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	case "textDocument/documentSymbol":
		var params protocol.DocumentSymbolParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return s.Symbols(params.TextDocument.URI)
	}
	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: fmt.Sprintf("method %s not handled", req.Method)}
}

func (s *LSPServer) isShutdown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shutdown
}

func decodeParams(req *jsonrpc2.Request, out interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, out); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *LSPServer) initialize() (*protocol.InitializeResult, error) {
	s.logger.Info("lsp initialize", zap.String("server", s.config.ServerName))
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync:       protocol.TextDocumentSyncKindFull,
			DocumentSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    s.config.ServerName,
			Version: s.config.Version,
		},
	}, nil
}

// DidOpen stores and parses a newly opened document.
func (s *LSPServer) DidOpen(uri protocol.DocumentURI, languageID string, version int32, text string) *Document {
	doc := &Document{URI: uri, LanguageID: languageID}
	s.update(doc, version, text)
	s.mu.Lock()
	s.openDocuments[uri] = doc
	s.mu.Unlock()
	return doc
}

// DidChange replaces the text of an open document and re-parses it.
func (s *LSPServer) DidChange(uri protocol.DocumentURI, version int32, text string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.openDocuments[uri]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("document %s not tracked", uri)
	}
	s.update(doc, version, text)
	return doc, nil
}

// DidClose forgets a document.
func (s *LSPServer) DidClose(uri protocol.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.openDocuments, uri)
}

// update parses text into a fresh graph and records the outcome.
func (s *LSPServer) update(doc *Document, version int32, text string) {
	result := analyze(text, s.config.ContextLines)
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Version = version
	doc.Text = text
	doc.lastErr = result.err
	if result.err == nil {
		doc.lastGood = result.graph
	}
	if result.err != nil {
		s.logger.Debug("parse failed", zap.String("uri", string(doc.URI)), zap.Error(result.err))
	}
}

// Diagnostics returns the diagnostics for the current version of uri.
func (s *LSPServer) Diagnostics(uri protocol.DocumentURI) ([]protocol.Diagnostic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.openDocuments[uri]
	if !ok {
		return nil, fmt.Errorf("document %s not tracked", uri)
	}
	return Diagnostics(doc.Text, doc.lastErr), nil
}

// Symbols returns the outline of the last version of uri that parsed cleanly.
func (s *LSPServer) Symbols(uri protocol.DocumentURI) ([]protocol.DocumentSymbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.openDocuments[uri]
	if !ok {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("document %s not tracked", uri)}
	}
	return DocumentSymbols(doc.Text, doc.lastGood), nil
}

func (s *LSPServer) publish(ctx context.Context, conn *jsonrpc2.Conn, doc *Document) error {
	diags, err := s.Diagnostics(doc.URI)
	if err != nil {
		return err
	}
	return conn.Notify(ctx, "textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diags,
	})
}

// stdioReadWriteCloser joins a reader and writer into one stream.
type stdioReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

// NewStdio wraps the process's stdin/stdout (or any pair) for Serve.
func NewStdio(r io.ReadCloser, w io.WriteCloser) io.ReadWriteCloser {
	return &stdioReadWriteCloser{reader: r, writer: w}
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.writer.Write(p) }
func (s *stdioReadWriteCloser) Close() error {
	_ = s.reader.Close()
	return s.writer.Close()
}
