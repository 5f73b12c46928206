package agent

// Config holds the chat completion endpoint and retrieval settings.
type Config struct {
	// APIURL is the full chat completions endpoint of an
	// OpenAI-compatible service.
	APIURL string `mapstructure:"api_url" default:""`
	APIKey string `mapstructure:"api_key" default:""`
	Model  string `mapstructure:"model" default:"gpt-4o-mini"`

	// TopK is how many documents each index contributes to the
	// grounding context.
	TopK int `mapstructure:"top_k" default:"3"`

	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}
