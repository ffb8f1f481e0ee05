package config

import "fmt"

type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Chat     ChatConfig              `mapstructure:"chat"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Server   ServerConfig            `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
}

func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ChatConfig tunes the template matcher, the query executor and the catalog index.
type ChatConfig struct {
	Matcher   MatcherConfig   `mapstructure:"matcher"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Index     IndexConfig     `mapstructure:"index"`
}

type MatcherConfig struct {
	MinPriority    int `mapstructure:"min_priority"`
	MaxSuggestions int `mapstructure:"max_suggestions"`
}

type ExecutorConfig struct {
	MaxResults         int     `mapstructure:"max_results"`
	TimeoutMs          int     `mapstructure:"timeout_ms"`
	CacheEnabled       bool    `mapstructure:"cache_enabled"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds"`
	RateLimitPerSec    float64 `mapstructure:"rate_limit_per_sec"`
	RateBurst          int     `mapstructure:"rate_burst"`
	BreakerMaxFailures uint32  `mapstructure:"breaker_max_failures"`
	BreakerTimeoutMs   int     `mapstructure:"breaker_timeout_ms"`
}

type TemplatesConfig struct {
	ExtraPackPath string `mapstructure:"extra_pack_path"`
	EagerLoad     bool   `mapstructure:"eager_load"`
}

type IndexConfig struct {
	Name    string `mapstructure:"name"`
	Enabled bool   `mapstructure:"enabled"`
}
