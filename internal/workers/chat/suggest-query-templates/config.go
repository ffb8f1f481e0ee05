package suggestquerytemplates

import "time"

type Config struct {
	Timeout        time.Duration
	MaxSuggestions int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        3 * time.Second,
		MaxSuggestions: 5,
	}
}
