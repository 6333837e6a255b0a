package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

const goodDoc = "protestant reformation (protref) : some event\nprotref < (prots) protestants\nprotref <caused> reldiv\n"

func TestDiagnosticsForSyntaxError(t *testing.T) {
	text := "a : x\n\n  nonsense here  \nb : y"
	_, err := nodelang.Parse(text)
	diags := Diagnostics(text, err)
	require.Len(t, diags, 1)

	d := diags[0]
	require.Equal(t, protocol.DiagnosticSeverityError, d.Severity)
	require.Equal(t, "SyntaxError", d.Code)
	require.Equal(t, diagnosticSource, d.Source)
	require.Equal(t, uint32(2), d.Range.Start.Line)
	require.Equal(t, uint32(0), d.Range.Start.Character)
	require.Equal(t, uint32(17), d.Range.End.Character)
}

func TestDiagnosticsClearOnSuccess(t *testing.T) {
	diags := Diagnostics(goodDoc, nil)
	require.NotNil(t, diags)
	require.Empty(t, diags)

	diags = Diagnostics("", errors.New("boom"))
	require.Len(t, diags, 1)
	require.Equal(t, "boom", diags[0].Message)
}

func TestLineRangeCountsUTF16(t *testing.T) {
	rng := lineRange("é𝄞 : x", 1)
	require.Equal(t, uint32(7), rng.End.Character)
	require.Equal(t, protocol.Range{}, lineRange("a", 0))
}

func TestDocumentSymbols(t *testing.T) {
	g, err := nodelang.Parse(goodDoc)
	require.NoError(t, err)

	symbols := DocumentSymbols(goodDoc, g)
	require.Len(t, symbols, 1)
	require.Equal(t, "protref", symbols[0].Name)
	require.Equal(t, protocol.SymbolKindClass, symbols[0].Kind)
	require.Equal(t, "protestant reformation: some event [caused]", symbols[0].Detail)
	require.Len(t, symbols[0].Children, 1)
	require.Equal(t, "prots", symbols[0].Children[0].Name)
	require.Equal(t, uint32(1), symbols[0].Children[0].Range.Start.Line)

	require.Empty(t, DocumentSymbols(goodDoc, nil))
}

func TestServerKeepsLastGoodGraph(t *testing.T) {
	s := NewLSPServer(Config{}, zap.NewNop())
	uri := protocol.DocumentURI("file:///tmp/history.nl")

	s.DidOpen(uri, "nodelang", 1, goodDoc)
	diags, err := s.Diagnostics(uri)
	require.NoError(t, err)
	require.Empty(t, diags)

	_, err = s.DidChange(uri, 2, goodDoc+"broken line\n")
	require.NoError(t, err)
	diags, err = s.Diagnostics(uri)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	symbols, err := s.Symbols(uri)
	require.NoError(t, err)
	require.Len(t, symbols, 1, "outline falls back to the last clean parse")

	s.DidClose(uri)
	_, err = s.Symbols(uri)
	require.Error(t, err)
	_, err = s.DidChange(uri, 3, goodDoc)
	require.Error(t, err)
}

type diagnosticsCollector chan protocol.PublishDiagnosticsParams

func (c diagnosticsCollector) handle(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
		var params protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		c <- params
	}
	return nil, nil
}

func (c diagnosticsCollector) next(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-c:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
	}
	return protocol.PublishDiagnosticsParams{}
}

func TestServeOverJSONRPC(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverSide, clientSide := net.Pipe()
	s := NewLSPServer(Config{ServerName: "nodelang-test", Version: "dev"}, zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, serverSide) }()

	collector := make(diagnosticsCollector, 8)
	client := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), jsonrpc2.HandlerWithError(collector.handle))
	defer client.Close()

	var init protocol.InitializeResult
	require.NoError(t, client.Call(ctx, "initialize", map[string]any{"processId": 1}, &init))
	require.NotNil(t, init.ServerInfo)
	require.Equal(t, "nodelang-test", init.ServerInfo.Name)
	require.NoError(t, client.Notify(ctx, "initialized", map[string]any{}))

	uri := "file:///tmp/history.nl"
	require.NoError(t, client.Notify(ctx, "textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": uri, "languageId": "nodelang", "version": 1, "text": "ghost <r> b\n"},
	}))
	published := collector.next(t)
	require.Equal(t, protocol.DocumentURI(uri), published.URI)
	require.Len(t, published.Diagnostics, 1)
	require.Equal(t, "UnknownNode", published.Diagnostics[0].Code)

	require.NoError(t, client.Notify(ctx, "textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": uri, "version": 2},
		"contentChanges": []map[string]any{{"text": goodDoc}},
	}))
	published = collector.next(t)
	require.Empty(t, published.Diagnostics)

	var symbols []protocol.DocumentSymbol
	require.NoError(t, client.Call(ctx, "textDocument/documentSymbol", map[string]any{
		"textDocument": map[string]any{"uri": uri},
	}, &symbols))
	require.Len(t, symbols, 1)
	require.Equal(t, "protref", symbols[0].Name)

	err := client.Call(ctx, "textDocument/hover", map[string]any{}, nil)
	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)

	require.NoError(t, client.Call(ctx, "shutdown", nil, nil))
	require.NoError(t, client.Notify(ctx, "exit", nil))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}
