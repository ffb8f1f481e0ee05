package extractchatentities

import "time"

type Config struct {
	Timeout time.Duration
	// MaxTextLength bounds the text accepted from a job.
	MaxTextLength int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		MaxTextLength: 2000,
	}
}
