package config

import (
	"strings"
	"time"
)

// DevstackConfig configures the local development stack: a fake
// identity backend plus a greeting endpoint, for running the app
// without cloud credentials.
type DevstackConfig struct {
	// Addr is the address to bind the devstack server to.
	Addr string `env:"ADDR" envDefault:":9090"`

	// Message is the greeting the /saludo endpoint returns.
	Message string `env:"MESSAGE" envDefault:"hola"`

	// OmitMessage makes /saludo answer 200 with an empty JSON object.
	OmitMessage bool `env:"OMIT_MESSAGE" envDefault:"false"`

	// FailStatus, when non-zero, makes /saludo answer with that status.
	FailStatus int `env:"FAIL_STATUS" envDefault:"0"`

	// Delay is applied before /saludo answers, to exercise timeouts.
	Delay time.Duration `env:"DELAY" envDefault:"0s"`

	// SessionDuration is the lifetime of minted dev sessions.
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"1h"`

	// Redis, when set, persists minted accounts across restarts.
	Redis DevstackRedisConfig `envPrefix:"REDIS_"`
}

// DevstackRedisConfig points the devstack account store at Redis.
// Leave Addr empty to keep accounts in memory.
type DevstackRedisConfig struct {
	Addr string `env:"ADDR"`
	DB   int    `env:"DB" envDefault:"0"`
}

// Sanitize applies guardrails to devstack configuration values.
func (c *DevstackConfig) Sanitize() {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = ":9090"
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	if c.FailStatus != 0 && (c.FailStatus < 100 || c.FailStatus > 599) {
		c.FailStatus = 0
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = time.Hour
	}
	c.Redis.Addr = strings.TrimSpace(c.Redis.Addr)
}
