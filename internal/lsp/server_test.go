package lsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServerAdvertisesDocumentSyncOnly(t *testing.T) {
	s := NewServer()
	assert.True(t, s.capabilities.TextDocumentSync.OpenClose)
	assert.Nil(t, s.capabilities.CompletionProvider)
	assert.Nil(t, s.capabilities.HoverProvider)
}

func TestPublishDiagnosticsWithNoClientIsSafe(t *testing.T) {
	s := NewServer()
	s.documents["file:///a.wfl"] = `display "unterminated`
	s.publishDiagnostics(context.Background(), "file:///a.wfl")
}

func TestDiagnosticForBuildsOneBasedRange(t *testing.T) {
	d := diagnosticFor(3, 5, "boom")
	assert.Equal(t, uint32(3), d.Range.Start.Line)
	assert.Equal(t, uint32(5), d.Range.Start.Character)
	assert.Equal(t, "boom", d.Message)
}
