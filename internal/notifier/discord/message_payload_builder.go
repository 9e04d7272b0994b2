package discord

// DiscordMessagePayloadBuilder helps in constructing DiscordMessagePayload objects.
type DiscordMessagePayloadBuilder struct {
	payload DiscordMessagePayload
}

// NewDiscordMessagePayloadBuilder creates a new instance of DiscordMessagePayloadBuilder.
func NewDiscordMessagePayloadBuilder() *DiscordMessagePayloadBuilder {
	return &DiscordMessagePayloadBuilder{}
}

// WithContent sets the content, cut to MaxContentLength characters.
func (b *DiscordMessagePayloadBuilder) WithContent(content string) *DiscordMessagePayloadBuilder {
	b.payload.Content = truncate(content, MaxContentLength)
	return b
}

// WithUsername sets the Username for the DiscordMessagePayload.
func (b *DiscordMessagePayloadBuilder) WithUsername(username string) *DiscordMessagePayloadBuilder {
	b.payload.Username = username
	return b
}

// WithAvatarURL sets the AvatarURL for the DiscordMessagePayload.
func (b *DiscordMessagePayloadBuilder) WithAvatarURL(avatarURL string) *DiscordMessagePayloadBuilder {
	b.payload.AvatarURL = avatarURL
	return b
}

// Build returns the constructed DiscordMessagePayload object.
func (b *DiscordMessagePayloadBuilder) Build() DiscordMessagePayload {
	return b.payload
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
