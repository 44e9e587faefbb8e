package report

import "github.com/rs/zerolog"

// Zerolog adapts a zerolog.Logger to the Sink interface.
type Zerolog struct {
	Logger zerolog.Logger
}

func (z Zerolog) Debug(msg string) { z.Logger.Debug().Msg(msg) }
func (z Zerolog) Error(msg string) { z.Logger.Error().Msg(msg) }
