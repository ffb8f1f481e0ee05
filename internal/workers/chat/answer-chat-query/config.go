package answerchatquery

import "time"

type Config struct {
	Timeout time.Duration
	// ExecuteByDefault applies when the job does not say whether to run the query.
	ExecuteByDefault bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          15 * time.Second,
		ExecuteByDefault: true,
	}
}
