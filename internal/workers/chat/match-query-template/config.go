package matchquerytemplate

import "time"

type Config struct {
	Timeout time.Duration
	// HintCount is how many catalog index hits accompany a failed match.
	HintCount int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   5 * time.Second,
		HintCount: 3,
	}
}
