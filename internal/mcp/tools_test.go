package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestToolsListAndInvoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, orders := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	if len(tools.Tools) != 19 {
		t.Fatalf("expected 19 tools, got %d", len(tools.Tools))
	}

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_portfolio", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call tool failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "create_order", Arguments: map[string]any{
		"instrument_uid": "uid-1",
		"quantity":       2,
		"direction":      "ORDER_DIRECTION_BUY",
		"order_type":     "ORDER_TYPE_MARKET",
	}})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected create order error: %+v", res.Content)
	}
	if orders.lastCreate.Direction != "ORDER_DIRECTION_BUY" {
		t.Fatalf("expected buy direction, got %s", orders.lastCreate.Direction)
	}
	if !strings.Contains(textContent(res), "ORDER_DIRECTION_BUY") {
		t.Fatalf("expected direction token echoed in response, got %s", textContent(res))
	}
}

func TestToolValidationErrorSurfaced(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "create_order", Arguments: map[string]any{
		"instrument_uid": "uid-1",
		"quantity":       2,
		"direction":      "ORDER_DIRECTION_BUY",
		"order_type":     "ORDER_TYPE_LIMIT",
	}})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level validation error")
	}
	if !strings.Contains(textContent(res), "ValidationError") {
		t.Fatalf("expected ValidationError kind in %q", textContent(res))
	}
}

func TestToolAuthorizationErrorSurfaced(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	srv, _ := testServer()
	session, shutdown, err := connectInMemory(ctx, srv)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer shutdown()
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_portfolio", Arguments: map[string]any{
		"account_id": "someone-else",
	}})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level authorization error")
	}
	if !strings.Contains(textContent(res), "AuthorizationError") {
		t.Fatalf("expected AuthorizationError kind in %q", textContent(res))
	}
}
