package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func roomLogger(code string) *zerolog.Logger {
	l := log.With().Str("room", code).Logger()
	return &l
}
