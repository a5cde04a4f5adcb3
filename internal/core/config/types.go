package config

// Config represents the eb configuration file
type Config struct {
	Version string      `yaml:"version" json:"version"`
	Color   string      `yaml:"color,omitempty" json:"color,omitempty"`
	Format  string      `yaml:"format,omitempty" json:"format,omitempty"`
	List    ListConfig  `yaml:"list" json:"list"`
	Print   PrintConfig `yaml:"print" json:"print"`
	Log     LogConfig   `yaml:"log" json:"log"`
}

// ListConfig holds defaults for directory listings
type ListConfig struct {
	Long      bool `yaml:"long" json:"long"`
	Across    bool `yaml:"across" json:"across"`
	All       bool `yaml:"all" json:"all"`
	DirsFirst bool `yaml:"dirsFirst" json:"dirsFirst"`
	Header    bool `yaml:"header" json:"header"`
	Binary    bool `yaml:"binary" json:"binary"`
	Bytes     bool `yaml:"bytes" json:"bytes"`
	Numeric   bool `yaml:"numeric" json:"numeric"`
	Git       bool `yaml:"git" json:"git"`
}

// PrintConfig holds defaults for printing files
type PrintConfig struct {
	Numbers bool   `yaml:"numbers" json:"numbers"`
	Plain   bool   `yaml:"plain" json:"plain"`
	Wrap    string `yaml:"wrap,omitempty" json:"wrap,omitempty"`
	Paging  string `yaml:"paging,omitempty" json:"paging,omitempty"`
	Theme   string `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// LogConfig holds logger defaults
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// DefaultConfig returns the default eb configuration
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills values left empty in the file
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if cfg.Format == "" {
		cfg.Format = "pretty"
	}
	if cfg.Print.Wrap == "" {
		cfg.Print.Wrap = "auto"
	}
	if cfg.Print.Paging == "" {
		cfg.Print.Paging = "auto"
	}
	if cfg.Print.Theme == "" {
		cfg.Print.Theme = "monokai"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
