// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"shapegen/internal/lsp"
)

const lsName = "shapegen"

var version = "0.1.0"

func main() {
	verbose := flag.Int("verbose", 0, "log verbosity (0=notice, 1=info, 2=debug)")
	logFile := flag.String("log", "", "log to this file instead of stderr")
	flag.Parse()

	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(*verbose, logPath)
	log := commonlog.GetLogger("shapegen.lsp")

	h := lsp.NewShapeHandler(version)
	handler := protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Noticef("starting %s %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("server stopped: %s", err)
		os.Exit(1)
	}
}
