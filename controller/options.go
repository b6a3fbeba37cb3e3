package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/nrfta/listview-go/urlstate"
	"github.com/nrfta/listview-go/window"
)

const defaultName = "list"

// Option configures a Controller.
type Option func(*config)

type config struct {
	codec        urlstate.Codec
	radius       int
	mode         window.Mode
	logger       *zap.Logger
	name         string
	fetchTimeout time.Duration
}

// WithCodec sets the URL codec: page sizes and declared filters.
func WithCodec(codec urlstate.Codec) Option {
	return func(c *config) {
		c.codec = codec
	}
}

// WithRadius sets how many neighbours of the current page are shown.
func WithRadius(radius int) Option {
	return func(c *config) {
		if radius >= 0 {
			c.radius = radius
		}
	}
}

// WithWindowMode selects how the page window treats out-of-range input.
func WithWindowMode(mode window.Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithName labels logs and metrics, e.g. "employees".
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithFetchTimeout bounds each fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) {
		c.fetchTimeout = d
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		codec:  urlstate.NewCodec(nil),
		radius: window.DefaultRadius,
		mode:   window.ModeStrict,
		logger: zap.NewNop(),
		name:   defaultName,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.codec.Config == nil {
		cfg.codec = urlstate.NewCodec(nil, cfg.codec.Filters...)
	}
	return cfg
}
