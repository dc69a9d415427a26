package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Services bundles the tool backends for registration.
type Services struct {
	Portfolio   PortfolioReader
	Operations  OperationsReader
	MarketData  MarketDataReader
	Orders      OrderWriter
	StopOrders  StopOrderWriter
	Instruments InstrumentReader
}

// NewServer builds the MCP server with all brokerage tools registered.
// No per-request timeout is imposed here: cancellation and deadlines belong
// to the upstream client, and its errors pass through as tool errors.
func NewServer(tracer trace.Tracer, deps Services) *sdkmcp.Server {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tinvest-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Tools for one T-Invest brokerage account: portfolio, market data, orders and reference data. Order placement is live trading.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(loggingMiddleware())
	if tracer != nil {
		srv.AddReceivingMiddleware(tracingMiddleware(tracer))
	}

	registerTools(srv, deps)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return hardenHTTPHandler(base, cfg)
}

func loggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			evt := log.Debug()
			if err != nil {
				evt = log.Warn().Err(err)
			}
			if callReq, ok := req.(*sdkmcp.CallToolRequest); ok {
				evt = evt.Str("tool", callReq.Params.Name)
			}
			evt.Str("method", method).Dur("elapsed", time.Since(start)).Msg("mcp request")
			return result, err
		}
	}
}

func tracingMiddleware(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx, span := tracer.Start(ctx, spanName(method, req))
			span.SetAttributes(attribute.String("mcp.method", method))
			defer span.End()

			if callReq, ok := req.(*sdkmcp.CallToolRequest); ok {
				span.SetAttributes(attribute.String("mcp.tool", strings.TrimSpace(callReq.Params.Name)))
			}

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			return result, err
		}
	}
}

func spanName(method string, req sdkmcp.Request) string {
	if method == "tools/call" {
		if callReq, ok := req.(*sdkmcp.CallToolRequest); ok {
			if name := strings.TrimSpace(callReq.Params.Name); name != "" {
				return "mcp.tool." + name
			}
		}
		return "mcp.tool.call"
	}
	return "mcp." + strings.ReplaceAll(method, "/", ".")
}
