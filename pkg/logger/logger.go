// Package logx configures the process-wide zerolog logger.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool   `split_words:"true" default:"false"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	Service      string `split_words:"true"`
}

// Init replaces the global logger. The zero Config logs JSON to stdout at
// info level; Service, when set, is stamped on every line.
func Init(opts ...Config) {
	var conf Config
	if len(opts) > 0 {
		conf = opts[0]
	}

	out := io.Writer(os.Stdout)
	if conf.PrettyFormat {
		out = zerolog.NewConsoleWriter()
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	lc := zerolog.New(out).Level(level).With().Timestamp().Caller().Stack()
	if svc := strings.TrimSpace(conf.Service); svc != "" {
		lc = lc.Str("service", svc)
	}
	log.Logger = lc.Logger()
}
