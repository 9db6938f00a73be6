package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type optionalNote struct {
	Note *string
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := TransferRequest{
		FromWalletID:   "  a  ",
		IdempotencyKey: " key-1 ",
		Description:    " rent ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "a", req.FromWalletID)
	assert.Equal(t, "key-1", req.IdempotencyKey)
	assert.Equal(t, "rent", req.Description)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := MutationRequest{Description: "salary <script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.Description, "&lt;script&gt;")
	assert.NotContains(t, req.Description, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	note := "  hello  "
	v := optionalNote{Note: &note}
	SanitizeStruct(&v)
	assert.Equal(t, "hello", *v.Note)

	empty := optionalNote{}
	SanitizeStruct(&empty)
	assert.Nil(t, empty.Note)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestIdempotencyKey_Valid(t *testing.T) {
	cases := []string{
		"dep-001",
		"WD_002",
		"a.b.c",
		"order:123:retry",
		"550e8400-e29b-41d4-a716-446655440000",
	}
	for _, tc := range cases {
		assert.True(t, idempotencyKeyRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestIdempotencyKey_Invalid(t *testing.T) {
	long := make([]byte, 129)
	for i := range long {
		long[i] = 'k'
	}
	cases := []string{
		"key 001",
		"key<001>",
		"key;DROP",
		"",
		"key\n001",
		string(long),
	}
	for _, tc := range cases {
		assert.False(t, idempotencyKeyRe.MatchString(tc), "expected invalid: %q", tc)
	}
}

func TestBindingValidators(t *testing.T) {
	valid := MutationRequest{AmountMinorUnits: 100, IdempotencyKey: "dep-1"}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	badKey := MutationRequest{AmountMinorUnits: 100, IdempotencyKey: "has space"}
	assert.Error(t, binding.Validator.ValidateStruct(&badKey))

	zero := MutationRequest{AmountMinorUnits: 0, IdempotencyKey: "dep-1"}
	assert.Error(t, binding.Validator.ValidateStruct(&zero))

	create := CreateWalletForMeRequest{Currency: "UZS"}
	assert.NoError(t, binding.Validator.ValidateStruct(&create))

	unsupported := CreateWalletForMeRequest{Currency: "GBP"}
	assert.Error(t, binding.Validator.ValidateStruct(&unsupported))

	// An empty optional key skips the format check.
	routed := RoutedDepositRequest{
		WalletID:           "550e8400-e29b-41d4-a716-446655440000",
		AmountMinorUnits:   100,
		Currency:           "USD",
		PaymentMethodToken: "pm_card_visa",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&routed))
}
