package dingtalk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// Sign computes the request signature for a signed robot channel.
//
// The string-to-sign is "{timestampMillis}\n{secret}" (decimal timestamp,
// a single newline, then the raw secret). It is MACed with HMAC-SHA256
// keyed by the secret itself and the digest is standard-base64 encoded
// with padding. Percent-encoding for URL embedding is the URL composer's
// job, not this function's.
//
// The result is deterministic for a fixed (secret, timestamp) pair.
func Sign(secret string, timestampMillis int64) string {
	stringToSign := fmt.Sprintf("%d\n%s", timestampMillis, secret)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// NowMillis returns the current wall-clock time in milliseconds since the
// Unix epoch. Every signed request samples a fresh timestamp; nothing is
// cached.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
