// Package crypt provides the signing primitives used for payment-gateway
// webhooks and checksums.
//
// Razorpay signs a successful checkout as
// HMAC_SHA256(secret, gatewayOrderID + "|" + paymentID), hex-encoded; the
// verification here is the server-side recomputation of that signature.
package crypt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// SignHMAC returns the hex-encoded HMAC-SHA256 of message under secret.
func SignHMAC(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC reports whether signature is the valid hex HMAC-SHA256 of
// message under secret. Comparison is constant-time.
func VerifyHMAC(secret, message, signature string) bool {
	expected := SignHMAC(secret, message)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Hash returns a SHA-256 hex digest of the input — useful for checksums and
// cache keys derived from user content.
func Hash(input string) string {
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", h)
}
