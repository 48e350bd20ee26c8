package config

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			Prefix: "lumina:",
		},
		AI: AIConfig{
			Model: "gemini-2.0-flash",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
