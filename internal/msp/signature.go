package msp

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Sign computes the notification signature header for a payload. The header
// is base64("<timestamp>:<hex hmac-sha512 of "<timestamp>:<payload>">")
// keyed with the account API key. Exposed so tests and the sandbox tooling
// can produce valid notifications.
func Sign(payload []byte, apiKey, timestamp string) string {
	digest := computeDigest(payload, apiKey, timestamp)
	return base64.StdEncoding.EncodeToString([]byte(timestamp + ":" + digest))
}

// VerifyNotification checks an inbound notification body against its Auth
// header. A false return means the payload must not mutate any order state.
func VerifyNotification(payload []byte, authHeader, apiKey string) bool {
	if authHeader == "" || apiKey == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(authHeader)
	if err != nil {
		return false
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return false
	}
	timestamp, digest := parts[0], parts[1]

	expected := computeDigest(payload, apiKey, timestamp)
	return hmac.Equal([]byte(expected), []byte(digest))
}

func computeDigest(payload []byte, apiKey, timestamp string) string {
	mac := hmac.New(sha512.New, []byte(apiKey))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(":"))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
