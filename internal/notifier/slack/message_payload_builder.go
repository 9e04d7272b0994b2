package slack

// SlackMessagePayloadBuilder helps in constructing SlackMessagePayload objects.
type SlackMessagePayloadBuilder struct {
	payload SlackMessagePayload
}

// NewSlackMessagePayloadBuilder creates a new instance of SlackMessagePayloadBuilder.
func NewSlackMessagePayloadBuilder() *SlackMessagePayloadBuilder {
	return &SlackMessagePayloadBuilder{}
}

// WithChannel overrides the webhook's default channel.
func (b *SlackMessagePayloadBuilder) WithChannel(channel string) *SlackMessagePayloadBuilder {
	b.payload.Channel = channel
	return b
}

// WithIconURL sets the bot avatar.
func (b *SlackMessagePayloadBuilder) WithIconURL(iconURL string) *SlackMessagePayloadBuilder {
	b.payload.IconURL = iconURL
	return b
}

// WithText sets the message body. Slack mrkdwn (*bold*, :emoji:) is rendered.
func (b *SlackMessagePayloadBuilder) WithText(text string) *SlackMessagePayloadBuilder {
	b.payload.Text = text
	return b
}

// WithUsername sets the bot display name.
func (b *SlackMessagePayloadBuilder) WithUsername(username string) *SlackMessagePayloadBuilder {
	b.payload.Username = username
	return b
}

// Build returns the constructed SlackMessagePayload object.
func (b *SlackMessagePayloadBuilder) Build() SlackMessagePayload {
	return b.payload
}
