package sources

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig is one registered feed endpoint.
type SourceConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type registryFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// Load reads the registered source list from a YAML file and validates it.
// The registry is fixed for a run; registration changes are a deploy concern.
func Load(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) ([]SourceConfig, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file lists no sources")
	}

	seen := make(map[string]string, len(file.Sources))
	for i, source := range file.Sources {
		if err := validate(source); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}
		if prev, ok := seen[source.URL]; ok {
			return nil, fmt.Errorf("duplicate feed URL %q shared by %q and %q", source.URL, prev, source.Name)
		}
		seen[source.URL] = source.Name
	}

	return file.Sources, nil
}

func validate(source SourceConfig) error {
	if source.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if source.URL == "" {
		return fmt.Errorf("feed URL is required")
	}

	parsed, err := url.Parse(source.URL)
	if err != nil {
		return fmt.Errorf("invalid feed URL %q: %w", source.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("feed URL %q must use http or https", source.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("feed URL %q has no host", source.URL)
	}

	return nil
}
