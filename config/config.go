package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // battle-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Game struct {
	Capacity       int    `yaml:"capacity"`       // max players per room
	MaxRounds      int    `yaml:"maxRounds"`      // rounds until a game finishes
	RoomTTL        string `yaml:"roomTTL"`        // room age before eviction
	SweepEvery     string `yaml:"sweepEvery"`     // expiry sweep interval
	ChatReplyDelay string `yaml:"chatReplyDelay"` // artificial AI reply latency
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Logging Logging `yaml:"logging"`
	Game    Game    `yaml:"game"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "battle-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Game.Capacity <= 0 {
		c.Game.Capacity = 6
	}
	if c.Game.MaxRounds <= 0 {
		c.Game.MaxRounds = 5
	}
	return nil
}

func (g Game) RoomTTLDuration() time.Duration {
	return parseDurationOr(2*time.Hour, g.RoomTTL)
}

func (g Game) SweepInterval() time.Duration {
	return parseDurationOr(30*time.Minute, g.SweepEvery)
}

func (g Game) ReplyDelay() time.Duration {
	return parseDurationOr(800*time.Millisecond, g.ChatReplyDelay)
}

func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
