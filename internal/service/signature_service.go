package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signaturePrefix tags the digest algorithm in X-Signature headers sent to
// the ledger and notification services.
const signaturePrefix = "sha256="

// HMACSignatureService implements ports.SignatureService for outbound
// collaborator calls. Signatures look like "sha256=<lowercase hex>".
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns the prefixed HMAC-SHA256 of payload under secretKey.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	return signaturePrefix + digest(secretKey, payload)
}

// Verify accepts a signature with or without the algorithm prefix.
// Comparison is constant-time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	got := strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix)
	return hmac.Equal([]byte(digest(secretKey, payload)), []byte(strings.ToLower(got)))
}

func digest(secretKey, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
