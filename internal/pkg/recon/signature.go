package recon

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// DefaultReplayTolerance bounds how far a signed timestamp may drift from
// local now before the delivery is treated as a replay.
const DefaultReplayTolerance = 5 * time.Minute

// VerifySignature recomputes the expected HMAC-SHA256 over the canonical
// string and compares in constant time. The canonical string is
// "<timestamp>.<body>" when a timestamp header was sent, else the raw body.
func VerifySignature(secret, signatureHeader, timestampHeader string, body []byte) bool {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	if ts := strings.TrimSpace(timestampHeader); ts != "" {
		mac.Write([]byte(ts))
		mac.Write([]byte{'.'})
	}
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// CheckTimestamp validates a unix-seconds timestamp header against now with
// a symmetric tolerance. An unparseable timestamp fails the check: a signed
// but garbled timestamp cannot prove freshness.
func CheckTimestamp(timestampHeader string, now time.Time, tolerance time.Duration) error {
	tsInt, err := strconv.ParseInt(strings.TrimSpace(timestampHeader), 10, 64)
	if err != nil {
		return ErrReplay
	}
	ts := time.Unix(tsInt, 0).UTC()
	now = now.UTC()
	if ts.Before(now.Add(-tolerance)) || ts.After(now.Add(tolerance)) {
		return ErrReplay
	}
	return nil
}

// SignHex computes the hex HMAC-SHA256 signature for the canonical string.
// Used by tests and provider onboarding tooling.
func SignHex(secret, timestampHeader string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	if ts := strings.TrimSpace(timestampHeader); ts != "" {
		mac.Write([]byte(ts))
		mac.Write([]byte{'.'})
	}
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
