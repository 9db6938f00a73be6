package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()
	secretKey := "ledger-signing-secret"
	payload := `{"walletId":"5d1c","amountMinorUnits":50000}`

	signature := svc.Sign(secretKey, payload)

	assert.Regexp(t, `^sha256=[0-9a-f]{64}$`, signature)
	assert.True(t, svc.Verify(secretKey, payload, signature))
	assert.True(t, svc.Verify(secretKey, payload, strings.TrimPrefix(signature, "sha256=")), "bare hex is accepted")
	assert.True(t, svc.Verify(secretKey, payload, strings.ToUpper(strings.TrimPrefix(signature, "sha256="))))
}

func TestHMACSignatureService_VerifyRejects(t *testing.T) {
	svc := NewHMACSignatureService()
	signature := svc.Sign("correct-key", "original payload")

	tests := []struct {
		name      string
		key       string
		payload   string
		signature string
	}{
		{"wrong key", "wrong-key", "original payload", signature},
		{"tampered payload", "correct-key", "tampered payload", signature},
		{"garbage", "correct-key", "original payload", "invalidsignature"},
		{"empty", "correct-key", "original payload", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, svc.Verify(tt.key, tt.payload, tt.signature))
		})
	}
}

func TestHMACSignatureService_DeterministicSign(t *testing.T) {
	svc := NewHMACSignatureService()
	assert.Equal(t, svc.Sign("key", "data"), svc.Sign("key", "data"))
	assert.NotEqual(t, svc.Sign("key", "data"), svc.Sign("other", "data"))
}
