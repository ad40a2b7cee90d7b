package paymentservice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance bounds how stale a webhook timestamp may be.
const signatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleSignature   = errors.New("webhook timestamp outside tolerance")
)

// VerifySignature checks a "t=<unix>,v1=<hex>" header against the HMAC-SHA256
// of "<t>.<payload>" under the shared secret. Fails closed on any parse error.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	var ts int64
	var provided []byte

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			decoded, err := hex.DecodeString(value)
			if err != nil {
				return ErrInvalidSignature
			}
			provided = decoded
		}
	}
	if ts == 0 || len(provided) == 0 {
		return ErrInvalidSignature
	}

	stamped := time.Unix(ts, 0)
	if stamped.Before(now.Add(-signatureTolerance)) || stamped.After(now.Add(signatureTolerance)) {
		return ErrStaleSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), provided) {
		return ErrInvalidSignature
	}
	return nil
}

// SignPayload produces a valid signature header for a payload, used by tests
// and the local checkout simulator.
func SignPayload(payload []byte, secret string, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return "t=" + ts + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}
