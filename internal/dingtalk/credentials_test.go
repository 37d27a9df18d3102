package dingtalk

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/dingrobot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeURL_UnsignedChannel(t *testing.T) {
	creds := NewCredentials("abc", "")
	composed := creds.ComposeURL(1000000000000)

	assert.Equal(t, DefaultWebhookBase+"abc", composed)
	assert.NotContains(t, composed, "timestamp=")
	assert.NotContains(t, composed, "sign=")
}

func TestComposeURL_SignedChannel(t *testing.T) {
	creds := NewCredentials("abc", "s3cr3t")
	composed := creds.ComposeURL(1000000000000)

	// Same timestamp in both places, signature from the known vector
	expectedSign := url.QueryEscape("ha9mWh5L0NJgIS+9KQZUvJxQX14wIS/7xgjPVoXusjQ=")
	assert.Equal(t, DefaultWebhookBase+"abc&timestamp=1000000000000&sign="+expectedSign, composed)
}

func TestComposeURL_SignaturePercentEncoded(t *testing.T) {
	creds := NewCredentials("abc", "s3cr3t")
	composed := creds.ComposeURL(1000000000000)

	// Raw base64 characters must not leak into the query string
	signParam := composed[strings.Index(composed, "&sign=")+len("&sign="):]
	assert.NotContains(t, signParam, "+")
	assert.NotContains(t, signParam, "/")
	assert.NotContains(t, signParam, "=")
}

func TestComposeURL_TokenRoundTrip(t *testing.T) {
	token := "ab c+d/e=f&g?h"
	creds := NewCredentials(token, "")
	composed := creds.ComposeURL(1000000000000)

	escaped := strings.TrimPrefix(composed, DefaultWebhookBase)
	decoded, err := url.QueryUnescape(escaped)
	require.NoError(t, err)
	assert.Equal(t, token, decoded)
}

func TestComposeURL_DirectURLBypass(t *testing.T) {
	direct := "https://oapi.dingtalk.com/robot/send?access_token=prebuilt&timestamp=1&sign=abc"
	creds := NewDirectCredentials(direct)

	assert.Equal(t, direct, creds.ComposeURL(1000000000000))
	assert.Equal(t, direct, creds.ComposeURL(2000000000000))
}

func TestComposeURL_CustomWebhookBase(t *testing.T) {
	creds := NewCredentials("abc", "").
		WithWebhookBase("https://proxy.internal/robot/send?access_token=")
	assert.Equal(t, "https://proxy.internal/robot/send?access_token=abc", creds.ComposeURL(0))
}

func TestCredentialsFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RobotConfig
		expected string
	}{
		{
			name:     "token only",
			cfg:      config.RobotConfig{AccessToken: "abc"},
			expected: DefaultWebhookBase + "abc",
		},
		{
			name: "custom base",
			cfg: config.RobotConfig{
				AccessToken:       "abc",
				DefaultWebhookURL: "https://proxy.internal/send?access_token=",
			},
			expected: "https://proxy.internal/send?access_token=abc",
		},
		{
			name: "direct url wins over everything",
			cfg: config.RobotConfig{
				AccessToken: "ignored",
				SecToken:    "ignored",
				DirectURL:   "https://example.com/hook",
			},
			expected: "https://example.com/hook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := CredentialsFromConfig(tt.cfg)
			assert.Equal(t, tt.expected, creds.ComposeURL(1000000000000))
		})
	}
}

func TestCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"default_webhook_url": "",
		"access_token": "file-token",
		"sec_token": "file-secret"
	}`), 0o644))

	creds, err := CredentialsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", creds.AccessToken())
	assert.True(t, creds.Signed())
}

func TestCredentialsFromFile_Missing(t *testing.T) {
	_, err := CredentialsFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCredentialsFromJSON(t *testing.T) {
	creds, err := CredentialsFromJSON([]byte(`{"access_token": "raw-token"}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultWebhookBase+"raw-token", creds.ComposeURL(0))
	assert.False(t, creds.Signed())

	_, err = CredentialsFromJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestCredentials_Signed(t *testing.T) {
	assert.False(t, NewCredentials("abc", "").Signed())
	assert.True(t, NewCredentials("abc", "s").Signed())
	assert.False(t, NewDirectCredentials("https://example.com/hook").Signed())
}
