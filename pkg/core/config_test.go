package core

import "testing"

func TestDefaultSamplingConfig_Valid(t *testing.T) {
	if err := DefaultSamplingConfig().Validate(); err != nil {
		t.Fatalf("Default sampling config should be valid: %v", err)
	}
	if err := DefaultTransportConfig().Validate(); err != nil {
		t.Fatalf("Default transport config should be valid: %v", err)
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SamplingConfig)
	}{
		{"zero width", func(c *SamplingConfig) { c.Width = 0 }},
		{"negative height", func(c *SamplingConfig) { c.Height = -1 }},
		{"no samples", func(c *SamplingConfig) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *SamplingConfig) { c.MaxDepth = -1 }},
		{"zero max channel", func(c *SamplingConfig) { c.MaxChannel = 0 }},
		{"zero exponent", func(c *SamplingConfig) { c.ToneExponent = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultSamplingConfig()
			tt.modify(&config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestTransportConfig_Validate(t *testing.T) {
	config := DefaultTransportConfig()
	config.DistanceScale = 0
	if err := config.Validate(); err == nil {
		t.Error("Expected error for zero distance scale")
	}

	config = DefaultTransportConfig()
	config.Background = Color{R: -1}
	if err := config.Validate(); err == nil {
		t.Error("Expected error for negative background")
	}
}
