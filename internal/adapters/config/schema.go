package config

// Configfile represents the structure of the .impacted.yaml configuration file.
type Configfile struct {
	Version  string     `yaml:"version"`
	Patterns []string   `yaml:"patterns"`
	Exclude  []string   `yaml:"exclude"`
	Cache    CacheDTO   `yaml:"cache"`
	Workers  int        `yaml:"workers"`
	Metrics  MetricsDTO `yaml:"metrics"`
}

// CacheDTO configures the persisted extraction cache.
type CacheDTO struct {
	File     string `yaml:"file"`
	Disabled bool   `yaml:"disabled"`
}

// MetricsDTO configures the prometheus textfile output.
type MetricsDTO struct {
	File string `yaml:"file"`
}
