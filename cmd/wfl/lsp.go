package main

import (
	"context"

	"github.com/wfl-lang/wfl/internal/lsp"
)

// runLSP launches the language server over stdin/stdout and blocks
// until the client sends exit or the process is interrupted.
func runLSP(ctx context.Context) error {
	return lsp.NewServer().Run(ctx)
}
