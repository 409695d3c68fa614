package prompts

// Result is the outcome of one resolution.
type Result struct {
	Version    string `json:"version" yaml:"version"`
	Text       string `json:"text" yaml:"text"`
	TokenCount int    `json:"token_count" yaml:"token_count"`
	Name       string `json:"name" yaml:"name"`
}
