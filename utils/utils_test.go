package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAccessToken(t *testing.T) {
	token := GenerateAccessToken()
	assert.Len(t, token, 64)
	assert.NotContains(t, token, "-")
	assert.NotEqual(t, token, GenerateAccessToken())
}

func TestGenerateReceiptNumber(t *testing.T) {
	receipt := GenerateReceiptNumber()
	assert.Regexp(t, regexp.MustCompile(`^RCPT-\d{8}-[0-9A-F]{8}$`), receipt)
	assert.NotEqual(t, receipt, GenerateReceiptNumber())
}
