package config

// DefaultModels maps each provider to its default analysis model.
var DefaultModels = map[ProviderType]string{
	ProviderGoogle: "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
}

// DefaultEmbeddingModels maps each provider to its default embedding model.
var DefaultEmbeddingModels = map[ProviderType]string{
	ProviderGoogle: "gemini-embedding-001",
	ProviderOpenAI: "text-embedding-3-small",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             DefaultModels[ProviderGoogle],
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    DefaultEmbeddingModels[ProviderGoogle],
		DataDir:           ".podsight",
		Port:              8080,
		DiscoveryDaysBack: 7,
		MinVideoMinutes:   10,
		MaxConcurrency:    4,
		RequestsPerMinute: 10,
		Beams:             BeamsConfig{Intensity: IntensityStrong},
	}
}
