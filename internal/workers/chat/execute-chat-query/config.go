package executechatquery

import "time"

type Config struct {
	Timeout time.Duration
	// RateLimitPerSec and RateBurst size the token bucket shared by every job.
	RateLimitPerSec float64
	RateBurst       int
	// RateWait bounds how long a job waits for a token.
	RateWait time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		RateLimitPerSec: 20,
		RateBurst:       40,
		RateWait:        2 * time.Second,
	}
}
