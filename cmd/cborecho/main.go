package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harrybrwn/cborhttp"
	"github.com/harrybrwn/cborhttp/internal/middleware"
)

func main() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

type config struct {
	Port      uint16
	BodyLimit int64
	LogLevel  string
	Debug     bool
}

func NewRootCmd() *cobra.Command {
	conf := config{
		Port:     8080,
		LogLevel: "info",
	}
	c := cobra.Command{
		Use:           "cborecho",
		Short:         "Run a small server that speaks cbor",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd, &conf)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			srv := http.Server{
				Addr:              fmt.Sprintf(":%d", conf.Port),
				Handler:           routes(logger, &conf),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("starting server", "port", conf.Port, "body_limit", conf.BodyLimit)
			return errors.WithStack(srv.ListenAndServe())
		},
	}
	c.Flags().Uint16VarP(&conf.Port, "port", "p", conf.Port, "server port")
	c.Flags().Int64Var(&conf.BodyLimit, "body-limit", conf.BodyLimit, "max request body size in bytes (0 for the default, negative for no limit)")
	c.Flags().StringVarP(&conf.LogLevel, "log-level", "l", conf.LogLevel, "set the log level (debug|info|warn|error)")
	c.Flags().BoolVarP(&conf.Debug, "debug", "d", conf.Debug, "turn on debug mode")
	return &c
}

func newLogger(cmd *cobra.Command, conf *config) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	if conf.Debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(cmd.OutOrStdout(), &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// Message is the payload accepted and returned by the echo routes.
type Message struct {
	Text   string `cbor:"text"`
	Number uint64 `cbor:"number"`
}

func routes(logger *slog.Logger, conf *config) http.Handler {
	opts := []cborhttp.Option{
		cborhttp.WithLogger(logger),
		cborhttp.WithBodyLimit(conf.BodyLimit),
	}
	r := chi.NewRouter()
	r.Use(middleware.NewRequestLogger(logger))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "POST cbor bodies to /echo or /text with content-type: application/cbor\n")
	})
	r.Post("/echo", cborhttp.Handle(func(_ *http.Request, m Message) (Message, error) {
		return m, nil
	}, opts...))
	r.Post("/text", func(w http.ResponseWriter, r *http.Request) {
		m, err := cborhttp.Extract[Message](r, opts...)
		if err != nil {
			cborhttp.WriteError(logger, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, m.Value.Text)
	})
	return r
}
