package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
)

// Intensity is a named opacity-multiplier preset for the beams background.
type Intensity string

const (
	IntensitySubtle Intensity = "subtle"
	IntensityMedium Intensity = "medium"
	IntensityStrong Intensity = "strong"
)

// Channel is a trusted YouTube channel watched by discovery.
type Channel struct {
	Name      string `yaml:"name" koanf:"name"`
	ChannelID string `yaml:"channel_id" koanf:"channel_id"`
}

// BeamsConfig configures the decorative beams background.
type BeamsConfig struct {
	Intensity Intensity `yaml:"intensity" koanf:"intensity"`
}

// Config is the top-level podsight configuration, corresponding to .podsight.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Port              int          `yaml:"port" koanf:"port"`
	Channels          []Channel    `yaml:"channels" koanf:"channels"`
	DiscoveryDaysBack int          `yaml:"discovery_days_back" koanf:"discovery_days_back"`
	MinVideoMinutes   int          `yaml:"min_video_minutes" koanf:"min_video_minutes"`
	MaxConcurrency    int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Beams             BeamsConfig  `yaml:"beams" koanf:"beams"`
}
