package logger

import (
	"log/slog"
	"os"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Backend string

const (
	BackendStd Backend = "std"
	BackendZap Backend = "zap"
)

type Config struct {
	Env       Env
	Service   string
	Version   string
	Backend   Backend
	AddSource bool
	Debug     bool
}

// Init installs the process-wide slog logger. The std backend writes text in
// dev and JSON in prod; the zap backend routes slog records through zap.
func Init(cfg Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch cfg.Backend {
	case BackendZap:
		var zl *zap.Logger
		var err error
		if cfg.Env == EnvProd {
			zl, err = zap.NewProduction()
		} else {
			zl, err = zap.NewDevelopment()
		}
		if err != nil {
			zl = zap.NewNop()
		}
		handler = slogzap.Option{
			Level:     level,
			Logger:    zl,
			AddSource: cfg.AddSource,
		}.NewZapHandler()
	default:
		opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}
		if cfg.Env == EnvProd {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
	}

	l := slog.New(handler).With(
		"service", cfg.Service,
		"env", string(cfg.Env),
		"version", cfg.Version,
	)
	slog.SetDefault(l)
}
