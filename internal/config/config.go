package config

import (
	"os"
	"strconv"
	"strings"

	"tinvest-mcp/internal/broker"
	"tinvest-mcp/internal/domain"
)

const (
	ModeSandbox    = "sandbox"
	ModeProduction = "production"

	defaultAppName = "tinvest-mcp"
)

type Config struct {
	Token     string
	AccountID string
	Mode      string
	AppName   string

	LogLevel string

	MCPTransport       string
	MCPHTTPBind        string
	MCPHTTPPort        int
	MCPAuthToken       string
	MCPRateLimitPerMin int
}

// Load reads the process configuration from the environment. Missing or
// invalid mandatory variables are fatal: the server must not come up able to
// serve even one method without a token and a pinned account.
func Load() (*Config, error) {
	cfg := &Config{
		Token:     strings.TrimSpace(os.Getenv("TINKOFF_TOKEN")),
		AccountID: strings.TrimSpace(os.Getenv("TINKOFF_ACCOUNT_ID")),
	}

	if cfg.Token == "" {
		return nil, &domain.ConfigurationError{Var: "TINKOFF_TOKEN", Reason: "required, set it to your T-Invest API token"}
	}
	if cfg.AccountID == "" {
		return nil, &domain.ConfigurationError{Var: "TINKOFF_ACCOUNT_ID", Reason: "required, set it to the single account this server may act on"}
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(os.Getenv("TINKOFF_MODE")))
	if cfg.Mode == "" {
		cfg.Mode = ModeSandbox
	}
	if cfg.Mode != ModeSandbox && cfg.Mode != ModeProduction {
		return nil, &domain.ConfigurationError{Var: "TINKOFF_MODE", Reason: "must be sandbox or production, got " + strconv.Quote(cfg.Mode)}
	}

	cfg.AppName = strings.TrimSpace(os.Getenv("TINKOFF_APP_NAME"))
	if cfg.AppName == "" {
		cfg.AppName = defaultAppName
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		return nil, &domain.ConfigurationError{Var: "MCP_TRANSPORT", Reason: "must be stdio or http, got " + strconv.Quote(cfg.MCPTransport)}
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = 8090
	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPHTTPPort = n
		}
	}

	cfg.MCPAuthToken = strings.TrimSpace(os.Getenv("MCP_AUTH_TOKEN"))

	cfg.MCPRateLimitPerMin = 60
	if v := strings.TrimSpace(os.Getenv("MCP_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MCPRateLimitPerMin = n
		}
	}

	return cfg, nil
}

func (c *Config) Endpoint() string {
	if c.Mode == ModeProduction {
		return broker.ProductionEndpoint
	}
	return broker.SandboxEndpoint
}

// Masked returns the configuration safe for logging.
func (c *Config) Masked() map[string]string {
	return map[string]string{
		"token":      mask(c.Token),
		"account_id": mask(c.AccountID),
		"mode":       c.Mode,
		"app_name":   c.AppName,
		"endpoint":   c.Endpoint(),
		"transport":  c.MCPTransport,
	}
}

func mask(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
