package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"tinvest-mcp/internal/broker"
	"tinvest-mcp/internal/cache"
	"tinvest-mcp/internal/config"
	"tinvest-mcp/internal/guard"
	mcpserver "tinvest-mcp/internal/mcp"
	"tinvest-mcp/internal/service"
)

const httpMaxBodyBytes int64 = 1 << 20 // 1MiB

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	dialBrokerFunc = broker.Dial
	newMCPHandlerF = mcpserver.NewHTTPTransportHandler
	runStdioFunc   = func(ctx context.Context, server *sdkmcp.Server) error {
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	}
	startHTTPServerFunc  = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFn = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify    = ossignal.Notify
	waitForSignalFunc    = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()

	cfg, err := loadConfigFunc()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}
	applyLogLevel(cfg.LogLevel)
	log.Info().Fields(cfg.Masked()).Msg("starting tinvest-mcp")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := dialBrokerFunc(cfg.Endpoint(), cfg.Token, cfg.AppName)
	if err != nil {
		log.Fatal().Err(err).Msg("broker dial failed")
	}
	defer clients.Close()

	gate := guard.New(cfg.AccountID)
	directory := cache.NewDirectory(clients.Instruments)

	mcpSrv := mcpserver.NewServer(otel.Tracer("tinvest-mcp"), mcpserver.Services{
		Portfolio:   service.NewPortfolio(clients.Operations, gate),
		Operations:  service.NewOperations(clients.Operations, gate),
		MarketData:  service.NewMarketData(clients.MarketData, clients.Instruments, directory),
		Orders:      service.NewOrders(clients.Orders, gate),
		StopOrders:  service.NewStopOrders(clients.StopOrders, gate),
		Instruments: service.NewInstruments(clients.Instruments, directory),
	})

	switch cfg.MCPTransport {
	case "stdio":
		if err := runStdioFunc(ctx, mcpSrv); err != nil {
			log.Fatal().Err(err).Msg("mcp stdio server failed")
		}
	case "http":
		if err := runHTTPMode(cancel, cfg, mcpSrv); err != nil {
			log.Fatal().Err(err).Msg("mcp http server failed")
		}
	}
}

func applyLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func runHTTPMode(cancel context.CancelFunc, cfg *config.Config, mcpSrv *sdkmcp.Server) error {
	if cfg.MCPAuthToken == "" {
		return fmt.Errorf("MCP_AUTH_TOKEN is required when MCP_TRANSPORT=http")
	}

	handler := newMCPHandlerF(mcpSrv, mcpserver.HTTPHandlerConfig{
		AuthToken:       cfg.MCPAuthToken,
		RateLimitPerMin: cfg.MCPRateLimitPerMin,
		MaxBodyBytes:    httpMaxBodyBytes,
	})

	addr := net.JoinHostPort(cfg.MCPHTTPBind, strconv.Itoa(cfg.MCPHTTPPort))
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		log.Info().Str("addr", addr).Msg("mcp http server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("mcp http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFn(srv, shutdownCtx); err != nil {
		return fmt.Errorf("mcp server forced to shutdown: %w", err)
	}
	return nil
}
