package dingtalk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSign_KnownVector(t *testing.T) {
	// HMAC-SHA256(key="s3cr3t", "1000000000000\ns3cr3t"), base64 with
	// padding, computed with an independent implementation.
	signature := Sign("s3cr3t", 1000000000000)
	assert.Equal(t, "ha9mWh5L0NJgIS+9KQZUvJxQX14wIS/7xgjPVoXusjQ=", signature)
}

func TestSign_Deterministic(t *testing.T) {
	first := Sign("top-secret", 1719999999999)
	second := Sign("top-secret", 1719999999999)
	assert.Equal(t, first, second)
}

func TestSign_TimestampSensitivity(t *testing.T) {
	base := Sign("top-secret", 1719999999999)
	shifted := Sign("top-secret", 1720000000000)
	assert.NotEqual(t, base, shifted)
}

func TestSign_SecretSensitivity(t *testing.T) {
	assert.NotEqual(t, Sign("secret-a", 1000000000000), Sign("secret-b", 1000000000000))
}

func TestNowMillis(t *testing.T) {
	before := time.Now().UnixMilli()
	got := NowMillis()
	after := time.Now().UnixMilli()
	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}
