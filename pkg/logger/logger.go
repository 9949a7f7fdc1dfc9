package logger

import (
	"fmt"
	"os"

	"github.com/fystack/kvcache/pkg/constant"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var Log zerolog.Logger

func init() {
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the package logger. Outside production it writes a colored
// console stream to stderr, in production plain JSON lines to stdout.
func Init(env string, debug bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if env != constant.EnvProduction {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).With().Timestamp().Logger()
	} else {
		Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

// withFields attaches key/value pairs to an event. An odd-length list is logged
// as-is under "fields" rather than failing, callers fix it when they see the output.
func withFields(e *zerolog.Event, keyValues []interface{}) *zerolog.Event {
	if len(keyValues)%2 != 0 {
		return e.Interface("fields", keyValues).Bool("bad_fields", true)
	}

	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			key = fmt.Sprint(keyValues[i])
		}
		e = e.Interface(key, keyValues[i+1])
	}
	return e
}

// Debug logs a debug message.
func Debug(msg string, keyValues ...interface{}) {
	withFields(Log.Debug(), keyValues).Msg(msg)
}

// Info logs an info message with optional key/value pairs.
func Info(msg string, keyValues ...interface{}) {
	withFields(Log.Info(), keyValues).Msg(msg)
}

func Infof(format string, v ...interface{}) {
	Log.Info().Msgf(format, v...)
}

// Warn logs a warning message with optional key/value pairs.
func Warn(msg string, keyValues ...interface{}) {
	withFields(Log.Warn(), keyValues).Msg(msg)
}

// Error logs an error message. keyValues must be pairs.
func Error(msg string, err error, keyValues ...interface{}) {
	if len(keyValues)%2 != 0 {
		panic("keyValues must be a list of key/value pairs")
	}

	withFields(Log.Error(), keyValues).Caller(1).Stack().Err(err).Msg(msg)
}

// Fatal logs a fatal message and exits the program.
func Fatal(msg string, err error) {
	Log.Fatal().Err(err).Msg(msg)
}
