package discord

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDiscordMessagePayloadBuilder_Build(t *testing.T) {
	payload := NewDiscordMessagePayloadBuilder().
		WithContent("hello").
		WithUsername("Links Checker").
		WithAvatarURL("https://example.com/icon.png").
		Build()

	assert.Equal(t, DiscordMessagePayload{
		Content:   "hello",
		Username:  "Links Checker",
		AvatarURL: "https://example.com/icon.png",
	}, payload)
}

func TestDiscordMessagePayloadBuilder_TruncatesContent(t *testing.T) {
	long := strings.Repeat("é", MaxContentLength+50)

	payload := NewDiscordMessagePayloadBuilder().WithContent(long).Build()

	assert.Equal(t, MaxContentLength, utf8.RuneCountInString(payload.Content))
	assert.True(t, strings.HasSuffix(payload.Content, "..."))
}
