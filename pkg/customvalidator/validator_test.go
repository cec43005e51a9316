package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serialProbe struct {
	Serial string `validate:"serial_number"`
}

type codeProbe struct {
	Code string `validate:"wc_code"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestSerialNumberRule(t *testing.T) {
	v := newTestValidator(t)

	for _, serial := range []string{"SN123456", "MTR-9988", "a1b"} {
		assert.NoError(t, v.Struct(serialProbe{Serial: serial}), serial)
	}
	for _, serial := range []string{"", "ab", "-SN1", "SN 123", "sn#1"} {
		assert.Error(t, v.Struct(serialProbe{Serial: serial}), serial)
	}
}

func TestWorkCenterCodeRule(t *testing.T) {
	v := newTestValidator(t)

	for _, code := range []string{"WC-01", "A1", "LINE-2-PRESS"} {
		assert.NoError(t, v.Struct(codeProbe{Code: code}), code)
	}
	for _, code := range []string{"", "w", "wc-01", "-WC", "WC 01"} {
		assert.Error(t, v.Struct(codeProbe{Code: code}), code)
	}
}
