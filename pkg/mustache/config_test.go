package mustache

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxDepth != DefaultMaxDepth {
		t.Errorf("got MaxDepth %d, want %d", config.MaxDepth, DefaultMaxDepth)
	}
	if config.MaxTagLength != DefaultMaxTagLength {
		t.Errorf("got MaxTagLength %d, want %d", config.MaxTagLength, DefaultMaxTagLength)
	}
	if config.AllowEmptyTag {
		t.Error("empty tags should be rejected by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("MUSTACHE_ALLOW_EMPTY_TAG", "true")
	t.Setenv("MUSTACHE_MAX_DEPTH", "32")
	t.Setenv("MUSTACHE_MAX_TAG_LENGTH", "64")
	t.Setenv("MUSTACHE_CACHE_MAX_SIZE", "5")
	t.Setenv("MUSTACHE_CACHE_TTL", "2m")

	config := ConfigFromEnvironment()

	if !config.AllowEmptyTag {
		t.Error("AllowEmptyTag should be set from environment")
	}
	if config.MaxDepth != 32 {
		t.Errorf("got MaxDepth %d, want 32", config.MaxDepth)
	}
	if config.MaxTagLength != 64 {
		t.Errorf("got MaxTagLength %d, want 64", config.MaxTagLength)
	}
	if config.CacheMaxSize != 5 {
		t.Errorf("got CacheMaxSize %d, want 5", config.CacheMaxSize)
	}
	if config.CacheTTL != 2*time.Minute {
		t.Errorf("got CacheTTL %v, want 2m", config.CacheTTL)
	}
}

func TestConfigFromEnvironmentIgnoresInvalid(t *testing.T) {
	t.Setenv("MUSTACHE_MAX_DEPTH", "not-a-number")

	config := ConfigFromEnvironment()
	if config.MaxDepth != DefaultMaxDepth {
		t.Errorf("invalid values should keep the default, got %d", config.MaxDepth)
	}
}

func TestNewConfigWithDefaults(t *testing.T) {
	config := NewConfigWithDefaults(nil)
	if config.MaxDepth != DefaultMaxDepth {
		t.Errorf("nil overrides should yield defaults, got %d", config.MaxDepth)
	}

	config = NewConfigWithDefaults(&Config{AllowEmptyTag: true})
	if !config.AllowEmptyTag {
		t.Error("overrides should be kept")
	}
	if config.MaxDepth != DefaultMaxDepth || config.MaxTagLength != DefaultMaxTagLength {
		t.Error("unset fields should be filled with defaults")
	}

	config = NewConfigWithDefaults(&Config{MaxDepth: 8})
	if config.MaxDepth != 8 {
		t.Errorf("explicit MaxDepth should be kept, got %d", config.MaxDepth)
	}
}

func TestNewConfigWithDefaultsSanitizes(t *testing.T) {
	config := NewConfigWithDefaults(&Config{
		MaxDepth:     -1,
		MaxTagLength: -1,
		CacheMaxSize: -5,
		CacheTTL:     -time.Second,
	})

	if config.MaxDepth != DefaultMaxDepth {
		t.Errorf("negative MaxDepth should fall back to default, got %d", config.MaxDepth)
	}
	if config.MaxTagLength != DefaultMaxTagLength {
		t.Errorf("negative MaxTagLength should fall back to default, got %d", config.MaxTagLength)
	}
	if config.CacheMaxSize != 0 {
		t.Errorf("negative CacheMaxSize should clamp to 0, got %d", config.CacheMaxSize)
	}
	if config.CacheTTL != 0 {
		t.Errorf("negative CacheTTL should clamp to 0, got %v", config.CacheTTL)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("sanitized config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{MaxDepth: 10, MaxTagLength: 100}, false},
		{"zero depth", Config{MaxDepth: 0, MaxTagLength: 100}, true},
		{"negative tag length", Config{MaxDepth: 10, MaxTagLength: -1}, true},
		{"negative cache size", Config{MaxDepth: 10, MaxTagLength: 100, CacheMaxSize: -1}, true},
		{"negative cache TTL", Config{MaxDepth: 10, MaxTagLength: 100, CacheTTL: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", " TRUE "} {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) should be true", v)
		}
	}
	for _, v := range []string{"false", "0", "no", "off", ""} {
		if parseBool(v) {
			t.Errorf("parseBool(%q) should be false", v)
		}
	}
}
