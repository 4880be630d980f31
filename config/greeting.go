package config

import (
	"strings"
	"time"
)

// GreetingConfig contains configuration for the greeting endpoint client.
type GreetingConfig struct {
	// BaseURL is the scheme and host of the greeting backend.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9090"`

	// Path is the greeting endpoint path on the backend.
	Path string `env:"PATH" envDefault:"/saludo"`

	// Timeout bounds a single greeting request end to end.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"7s"`

	// MessageExpr is the JMESPath expression that extracts the message
	// from the response body.
	MessageExpr string `env:"MESSAGE_EXPR" envDefault:"mensaje"`
}

const defaultGreetingTimeout = 7 * time.Second

// Sanitize applies guardrails to greeting configuration values.
func (c *GreetingConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" {
		c.Path = "/saludo"
	}
	if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/" + c.Path
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultGreetingTimeout
	}
	c.MessageExpr = strings.TrimSpace(c.MessageExpr)
	if c.MessageExpr == "" {
		c.MessageExpr = "mensaje"
	}
}
