package config

// Config is the full lum configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	AI      AIConfig      `yaml:"ai" mapstructure:"ai"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects the blob backend. Path is used by sqlite, URL by redis and postgres.
type StorageConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
	URL    string `yaml:"url" mapstructure:"url"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// AIConfig configures the coaching backend. An empty APIKey disables it.
type AIConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
