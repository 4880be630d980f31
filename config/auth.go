package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the identity provider mode for the application.
type AuthMode string

const (
	// AuthModeFirebase signs in against the Firebase/Identity Toolkit REST API.
	AuthModeFirebase AuthMode = "firebase"
	// AuthModeMock uses an in-process identity provider (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "firebase", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: firebase, mock)", v)
	}
}

// FirebaseConfig contains Identity Toolkit configuration.
// Used when AUTH_MODE=firebase.
type FirebaseConfig struct {
	APIKey        string `env:"API_KEY"`
	ProjectID     string `env:"PROJECT_ID"`
	SignUpURL     string `env:"SIGNUP_URL"`
	TokenURL      string `env:"TOKEN_URL"`
	Issuer        string `env:"ISSUER"`
	VerifyIDToken bool   `env:"VERIFY_ID_TOKEN" envDefault:"false"`
}

// DevAuthConfig controls the mock identity provider.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UID             string        `env:"UID"`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"1h"`
	FailSignIn      bool          `env:"FAIL_SIGNIN"      envDefault:"false"`
	FailSignOut     bool          `env:"FAIL_SIGNOUT"     envDefault:"false"`
}

// AuthConfig groups all identity-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"firebase"`

	// Firebase configuration (used when Mode=firebase).
	Firebase FirebaseConfig `envPrefix:"FIREBASE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to identity configuration values.
func (c *AuthConfig) Sanitize() {
	c.Firebase.APIKey = strings.TrimSpace(c.Firebase.APIKey)
	c.Firebase.SignUpURL = strings.TrimSpace(c.Firebase.SignUpURL)
	c.Firebase.TokenURL = strings.TrimSpace(c.Firebase.TokenURL)
	if c.DevAuth.SessionDuration <= 0 {
		c.DevAuth.SessionDuration = time.Hour
	}
}

// Validate checks that the selected mode has what it needs.
func (c *AuthConfig) Validate() error {
	if c.Mode == AuthModeFirebase && c.Firebase.APIKey == "" {
		return fmt.Errorf("FIREBASE_API_KEY is required when AUTH_MODE=firebase")
	}
	return nil
}
