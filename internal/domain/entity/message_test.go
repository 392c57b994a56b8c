package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentRoundTrip(t *testing.T) {
	attachments := []Attachment{
		{URL: "https://storage.example.com/a.png", Name: "a.png", Type: "image/png", Size: 2048},
		{URL: "https://storage.example.com/b.pdf", Name: "b.pdf", Type: "application/pdf", Size: 4096},
	}

	encoded, err := EncodeAttachments(attachments)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded, err := DecodeAttachments(encoded)
	require.NoError(t, err)
	assert.Equal(t, attachments, decoded)
}

func TestEncodeAttachmentsEmpty(t *testing.T) {
	encoded, err := EncodeAttachments(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	decoded, err := DecodeAttachments("")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeAttachmentsMalformed(t *testing.T) {
	_, err := DecodeAttachments("{not json")
	assert.Error(t, err)
}

func TestMessageAttachments(t *testing.T) {
	encoded, err := EncodeAttachments([]Attachment{{URL: "https://x/y.png", Name: "y.png", Type: "image/png", Size: 1}})
	require.NoError(t, err)

	m := &Message{Files: encoded}
	attachments, err := m.Attachments()
	require.NoError(t, err)
	assert.Len(t, attachments, 1)
}
