package logger

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/plankt0n/streamplay-api/pkg/log"
	"github.com/rs/zerolog"
)

// Log is the process logger. Packages derive their own named logger from it.
var Log = func() *zerolog.Logger {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &l
}()

type Logger struct {
	zl *zerolog.Logger
}

func Initialize(cfg *log.Config) (*Logger, error) {
	if cfg == nil {
		return nil, errors.New("invalid passed options pointer")
	}
	cfg.SetDefault()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse level")
	}

	var out io.Writer = os.Stderr
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	Log = &l

	return &Logger{zl: Log}, nil
}

func (l *Logger) Zerolog() *zerolog.Logger {
	return l.zl
}

// Middleware writes one access log line per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			ev := Log.Info()
			if status >= http.StatusInternalServerError {
				ev = Log.Error()
			}

			ev.Str("name", "http").
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()

		next.ServeHTTP(ww, r.WithContext(Log.WithContext(r.Context())))
	})
}
