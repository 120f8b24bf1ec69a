package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/signadot/plistkit"
	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/schema"
)

const lsName = "plist-lsp"

var (
	version = "0.0.1"
)

// plist-lsp [manifest.plist ...]
//
// Manifests named on the command line are registered globally and checked
// against documents whose PayloadType names their domain.
func main() {
	for _, f := range os.Args[1:] {
		if err := loadManifest(f); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", lsName, err)
			os.Exit(1)
		}
	}
	logger := zap.NewNop()
	if debug.LSP() {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	server := newServer(schema.Global())
	conn := jsonrpc2.NewConn(stream)
	server.client = protocol.ClientDispatcher(conn, logger)
	conn.Go(ctx, protocol.ServerHandler(server, nil))
	<-conn.Done()
}

func loadManifest(file string) error {
	it, err := plistkit.ReadFile(file)
	if err != nil {
		return err
	}
	m, err := schema.ParseManifest(it)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return schema.Register(m)
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
