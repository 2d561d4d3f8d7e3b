package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to podsight! Let's configure your analyzer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"google", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.Model = DefaultModels[cfg.Provider]
	cfg.EmbeddingProvider = cfg.Provider
	cfg.EmbeddingModel = DefaultEmbeddingModels[cfg.Provider]

	if os.Getenv(APIKeyEnvVar(cfg.Provider)) == "" {
		fmt.Printf("Note: %s is not set; set it before running analysis.\n", APIKeyEnvVar(cfg.Provider))
	}
	if os.Getenv("YOUTUBE_API_KEY") == "" {
		fmt.Println("Note: YOUTUBE_API_KEY is not set; discovery needs it.")
	}

	// 2. Trusted channels.
	channelsPrompt := promptui.Prompt{
		Label: "Trusted channels (comma-separated name=channel_id pairs, empty to skip)",
	}
	channelsStr, err := channelsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("channels: %w", err)
	}
	cfg.Channels = parseChannels(channelsStr)

	// 3. Discovery window.
	daysPrompt := promptui.Prompt{
		Label:   "Days back to look for new uploads",
		Default: strconv.Itoa(cfg.DiscoveryDaysBack),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	daysStr, err := daysPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("discovery window: %w", err)
	}
	cfg.DiscoveryDaysBack, _ = strconv.Atoi(daysStr)

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Web server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("must be a valid port number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 5. Beams intensity.
	intensityPrompt := promptui.Select{
		Label: "Background animation intensity",
		Items: []string{"subtle", "medium", "strong"},
	}
	_, intensityStr, err := intensityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("intensity selection: %w", err)
	}
	cfg.Beams.Intensity = Intensity(intensityStr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// parseChannels parses "Name=UCxxxx, Other=UCyyyy" into Channel values.
func parseChannels(s string) []Channel {
	var channels []Channel
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, id, found := strings.Cut(part, "=")
		if !found {
			// Bare channel ID with no friendly name.
			channels = append(channels, Channel{Name: part, ChannelID: part})
			continue
		}
		channels = append(channels, Channel{
			Name:      strings.TrimSpace(name),
			ChannelID: strings.TrimSpace(id),
		})
	}
	return channels
}
