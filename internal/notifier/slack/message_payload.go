package slack

// SlackMessagePayload is the body of a Slack incoming-webhook call.
type SlackMessagePayload struct {
	Channel  string `json:"channel,omitempty"`
	IconURL  string `json:"icon_url,omitempty"`
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
}
