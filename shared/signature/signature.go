package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Compute returns the hex HMAC-SHA256 of timestamp + "." + body. The
// signature covers the raw request bytes; callers must not re-serialize the
// body before signing or verifying.
func Compute(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the given hex signature in constant time.
func Verify(secret, timestamp string, body []byte, signature string) bool {
	if signature == "" || timestamp == "" {
		return false
	}

	expected, err := hex.DecodeString(Compute(secret, timestamp, body))
	if err != nil {
		return false
	}

	given, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, given)
}
