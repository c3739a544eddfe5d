package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"

	"github.com/lobsterdomains/mcp-server/mcp"
	"github.com/lobsterdomains/mcp-server/mcp/transport"
	"github.com/lobsterdomains/mcp-server/mcp/transport/httptransport"
	"github.com/lobsterdomains/mcp-server/mcp/transport/stdio"
	"github.com/lobsterdomains/mcp-server/registrar"
	"github.com/lobsterdomains/mcp-server/tools"
)

var logger = xlog.NewPackageLogger("github.com/lobsterdomains/mcp-server", "cli")

var (
	serveCfgFile string
	serveBaseURL string
	serveHTTP    bool
	serveAddr    string
	serveDebug   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool catalog over stdio or HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveCfgFile, "cfg", "", "Configuration file")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Registrar API origin (overrides the configuration file)")
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "Serve over HTTP instead of stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address for HTTP mode")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Debug logging")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Logs go to stderr unconditionally: in stdio mode stdout carries the
	// protocol stream.
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if serveDebug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.INFO)
	}

	cfg, err := registrar.LoadConfig(serveCfgFile)
	if err != nil {
		return err
	}
	baseURL := cfg.BaseURL
	if serveBaseURL != "" {
		baseURL = serveBaseURL
	}

	client := registrar.NewClient(baseURL)

	var tr transport.Transport
	if serveHTTP {
		tr = httptransport.NewHTTPTransport("/mcp").WithAddr(serveAddr)
	} else {
		tr = stdio.New()
	}

	server := mcp.NewServer(tr,
		mcp.WithName("lobster-domains"),
		mcp.WithVersion(version),
	)

	registry := tools.NewRegistry(client)
	if err := registry.RegisterAll(server); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	logger.KV(xlog.INFO,
		"status", "starting",
		"base_url", client.BaseURL(),
		"http", serveHTTP,
	)
	return server.Serve()
}
