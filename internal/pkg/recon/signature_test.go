package recon

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"trxID":"TX1","amount":"100.00"}`)
	ts := "1700000000"

	t.Run("valid signature with timestamp", func(t *testing.T) {
		sig := SignHex(secret, ts, body)
		assert.True(t, VerifySignature(secret, sig, ts, body))
	})

	t.Run("valid signature without timestamp", func(t *testing.T) {
		sig := SignHex(secret, "", body)
		assert.True(t, VerifySignature(secret, sig, "", body))
	})

	t.Run("uppercase hex accepted", func(t *testing.T) {
		sig := SignHex(secret, ts, body)
		upper := ""
		for _, r := range sig {
			if r >= 'a' && r <= 'f' {
				r = r - 'a' + 'A'
			}
			upper += string(r)
		}
		assert.True(t, VerifySignature(secret, upper, ts, body))
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		sig := SignHex(secret, ts, body)
		tampered := []byte(`{"trxID":"TX1","amount":"999.00"}`)
		assert.False(t, VerifySignature(secret, sig, ts, tampered))
	})

	t.Run("tampered timestamp rejected", func(t *testing.T) {
		sig := SignHex(secret, ts, body)
		assert.False(t, VerifySignature(secret, sig, "1700009999", body))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		sig := SignHex("other-secret", ts, body)
		assert.False(t, VerifySignature(secret, sig, ts, body))
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, "", ts, body))
	})

	t.Run("non-hex signature rejected", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, "not-hex!", ts, body))
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		sig := SignHex(secret, ts, body)
		assert.False(t, VerifySignature("", sig, ts, body))
	})
}

func TestCheckTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tolerance := 5 * time.Minute

	cases := []struct {
		name    string
		ts      time.Time
		wantErr bool
	}{
		{"exactly now", now, false},
		{"just inside past window", now.Add(-tolerance + time.Second), false},
		{"just inside future window", now.Add(tolerance - time.Second), false},
		{"boundary is inclusive", now.Add(-tolerance), false},
		{"too old", now.Add(-tolerance - time.Second), true},
		{"too far in future", now.Add(tolerance + time.Second), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := fmt.Sprintf("%d", tc.ts.Unix())
			err := CheckTimestamp(header, now, tolerance)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrReplay))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("garbled timestamp rejected", func(t *testing.T) {
		assert.True(t, errors.Is(CheckTimestamp("not-a-number", now, tolerance), ErrReplay))
	})
}
