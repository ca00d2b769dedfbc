package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydroline/hydroline/pkg/crypt"
)

func TestSignHMACIsDeterministic(t *testing.T) {
	a := crypt.SignHMAC("secret", "order_123|pay_456")
	b := crypt.SignHMAC("secret", "order_123|pay_456")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex SHA-256
}

func TestVerifyHMAC(t *testing.T) {
	sig := crypt.SignHMAC("secret", "order_123|pay_456")

	assert.True(t, crypt.VerifyHMAC("secret", "order_123|pay_456", sig))
	assert.False(t, crypt.VerifyHMAC("secret", "order_123|pay_457", sig))
	assert.False(t, crypt.VerifyHMAC("other-secret", "order_123|pay_456", sig))
	assert.False(t, crypt.VerifyHMAC("secret", "order_123|pay_456", sig[:63]+"0"))
	assert.False(t, crypt.VerifyHMAC("secret", "order_123|pack_456", ""))
}

func TestHash(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		crypt.Hash("hello"))
}
