package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// MediaResolution controls how much detail the model extracts from video input.
type MediaResolution string

const (
	MediaResolutionLow    MediaResolution = "MEDIA_RESOLUTION_LOW"
	MediaResolutionMedium MediaResolution = "MEDIA_RESOLUTION_MEDIUM"
)

// CompletionRequest contains the parameters for an LLM completion request.
// VideoURI attaches a video (e.g. a YouTube URL) as file data alongside the
// prompt; only providers with native video support honor it.
type CompletionRequest struct {
	Model           string
	Messages        []Message
	VideoURI        string
	MediaResolution MediaResolution
	MaxTokens       int
	Temperature     float64
	JSONMode        bool
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
