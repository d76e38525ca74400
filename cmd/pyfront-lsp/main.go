// SPDX-License-Identifier: Apache-2.0

// Command pyfront-lsp runs the editor-integration language server over
// stdio.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pyfront/internal/lsp"
)

const lsName = "pyfront"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()
	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("starting pyfront-lsp", version)
	if err := s.RunStdio(); err != nil {
		log.Println("pyfront-lsp error:", err)
		os.Exit(1)
	}
}
