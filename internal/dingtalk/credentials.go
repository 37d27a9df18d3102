package dingtalk

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aleister1102/dingrobot/internal/common"
	"github.com/aleister1102/dingrobot/internal/config"
)

// DefaultWebhookBase is the standard robot endpoint; the access token is
// appended directly to it.
const DefaultWebhookBase = "https://oapi.dingtalk.com/robot/send?access_token="

// Credentials identifies one webhook robot channel. Values are immutable
// once constructed and safe to share between any number of concurrent
// sends.
//
// A non-empty direct URL overrides every other field: it is returned
// verbatim by ComposeURL, token and signature included by the caller.
type Credentials struct {
	webhookBase string
	accessToken string
	secToken    string
	directURL   string
}

// NewCredentials creates credentials for a token-addressed channel.
// secToken may be empty for unsigned channels.
func NewCredentials(accessToken, secToken string) Credentials {
	return Credentials{
		webhookBase: DefaultWebhookBase,
		accessToken: accessToken,
		secToken:    secToken,
	}
}

// NewDirectCredentials creates credentials from a fully pre-built target
// URL, bypassing token and signature composition entirely.
func NewDirectCredentials(directURL string) Credentials {
	return Credentials{directURL: directURL}
}

// CredentialsFromConfig builds credentials from a loaded robot config section
func CredentialsFromConfig(cfg config.RobotConfig) Credentials {
	if cfg.DirectURL != "" {
		return NewDirectCredentials(cfg.DirectURL)
	}
	creds := NewCredentials(cfg.AccessToken, cfg.SecToken)
	if cfg.DefaultWebhookURL != "" {
		creds = creds.WithWebhookBase(cfg.DefaultWebhookURL)
	}
	return creds
}

// CredentialsFromFile loads channel credentials from a JSON or YAML file.
// A leading "~/" in the path is expanded to the user's home directory.
func CredentialsFromFile(path string) (Credentials, error) {
	cfg, err := config.LoadRobotConfig(path)
	if err != nil {
		return Credentials{}, err
	}
	return CredentialsFromConfig(*cfg), nil
}

// CredentialsFromJSON parses channel credentials from raw JSON
func CredentialsFromJSON(data []byte) (Credentials, error) {
	cfg := config.NewDefaultRobotConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Credentials{}, common.WrapError(err, "failed to parse robot credentials JSON")
	}
	return CredentialsFromConfig(cfg), nil
}

// WithWebhookBase returns a copy using the given endpoint base instead of
// DefaultWebhookBase
func (c Credentials) WithWebhookBase(base string) Credentials {
	c.webhookBase = base
	return c
}

// AccessToken returns the channel access token
func (c Credentials) AccessToken() string {
	return c.accessToken
}

// Signed reports whether requests for this channel carry a signature
func (c Credentials) Signed() bool {
	return c.directURL == "" && c.secToken != ""
}

// ComposeURL assembles the request URL for the given timestamp.
//
// Direct URL set: returned verbatim. Otherwise the access token is
// query-escaped and appended to the webhook base; if a secret is
// configured, "&timestamp=<ms>&sign=<escaped signature>" is appended with
// the same millisecond value in both places. Query escaping covers the
// '+', '/' and '=' characters base64 signatures contain.
func (c Credentials) ComposeURL(timestampMillis int64) string {
	if c.directURL != "" {
		return c.directURL
	}

	var composed strings.Builder
	composed.WriteString(c.webhookBase)
	composed.WriteString(url.QueryEscape(c.accessToken))

	if c.secToken != "" {
		signature := Sign(c.secToken, timestampMillis)
		fmt.Fprintf(&composed, "&timestamp=%d&sign=%s", timestampMillis, url.QueryEscape(signature))
	}

	return composed.String()
}
