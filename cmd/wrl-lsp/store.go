package main

import (
	"context"
	"errors"
	"sync"

	"github.com/signadot/wrl2/parse"
	"github.com/signadot/wrl2/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is an immutable load of one version of a file.  res is nil
// if the header was rejected; err is the fatal error, if any, in which
// case res holds what was read before it.
type document struct {
	uri     string
	content string
	version int32
	res     *parse.Result
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	res, err := parse.Parse([]byte(content),
		parse.Positions(true),
		parse.ForwardRefs(true),
		parse.Logger(theLog))
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
		res:     res,
		err:     err,
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Diagnostics: validateDocument(doc),
	})
	if err != nil {
		theLog.Warn("publishing diagnostics", "uri", doc.uri, "err", err)
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.res != nil {
		for _, d := range doc.res.Diagnostics {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    errRange(d.Pos),
				Severity: protocol.DiagnosticSeverityWarning,
				Source:   "wrl",
				Message:  d.Err.Error(),
			})
		}
	}
	if doc.err != nil {
		var pos *token.Pos
		var te *token.TokenizeErr
		if errors.As(doc.err, &te) {
			pos = &te.Pos
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    errRange(pos),
			Severity: protocol.DiagnosticSeverityError,
			Source:   "wrl",
			Message:  doc.err.Error(),
		})
	}
	return diagnostics
}

func lspPos(p *token.Pos) protocol.Position {
	line, col := p.LineCol()
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

// wordRange is the range of the n bytes starting at p.
func wordRange(p *token.Pos, n int) protocol.Range {
	start := lspPos(p)
	end := start
	end.Character += uint32(n)
	return protocol.Range{Start: start, End: end}
}

func errRange(p *token.Pos) protocol.Range {
	if p == nil || p.D == nil {
		return protocol.Range{}
	}
	return wordRange(p, 1)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

// DidChange expects full document sync: the last change holds the whole
// text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
