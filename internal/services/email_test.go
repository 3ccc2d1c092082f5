package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEmailTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := defaultEmailTemplate.Execute(&buf, map[string]string{
		"Subject":    "You've received a transfer",
		"SenderName": "Column",
	})

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "You&#39;ve received a transfer")
	assert.Contains(t, html, "Sent by Column")
	assert.Contains(t, html, "claim")
}
