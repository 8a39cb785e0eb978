package sources

import (
	"testing"
)

func TestParseValidRegistry(t *testing.T) {
	data := []byte(`
sources:
  - name: TechCrunch
    url: https://techcrunch.com/feed/
  - name: Ars Technica
    url: https://feeds.arstechnica.com/arstechnica/index
`)

	configs, err := Parse(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(configs) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(configs))
	}
	if configs[0].Name != "TechCrunch" {
		t.Errorf("Expected name 'TechCrunch', got: %s", configs[0].Name)
	}
	if configs[1].URL != "https://feeds.arstechnica.com/arstechnica/index" {
		t.Errorf("Unexpected URL: %s", configs[1].URL)
	}
}

func TestParseEmptyRegistry(t *testing.T) {
	if _, err := Parse([]byte("sources: []")); err == nil {
		t.Error("Expected error for empty source list")
	}
}

func TestParseMissingName(t *testing.T) {
	data := []byte(`
sources:
  - url: https://example.com/feed
`)
	if _, err := Parse(data); err == nil {
		t.Error("Expected error for source without name")
	}
}

func TestParseRejectsNonHTTPScheme(t *testing.T) {
	data := []byte(`
sources:
  - name: Local
    url: file:///etc/passwd
`)
	if _, err := Parse(data); err == nil {
		t.Error("Expected error for non-http feed URL")
	}
}

func TestParseRejectsDuplicateURL(t *testing.T) {
	data := []byte(`
sources:
  - name: One
    url: https://example.com/feed
  - name: Two
    url: https://example.com/feed
`)
	if _, err := Parse(data); err == nil {
		t.Error("Expected error for duplicate feed URL")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("sources: [unclosed")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
