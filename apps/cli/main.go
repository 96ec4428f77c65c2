package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-client/apps/devtools"
	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/store"
	"github.com/trezcool/masomo-client/services/api"
	"github.com/trezcool/masomo-client/services/logger"
	"github.com/trezcool/masomo-client/services/notify"
	"github.com/trezcool/masomo-client/services/session"
	"github.com/trezcool/masomo-client/storage"
)

func main() {
	std := log.New(os.Stderr, "MASOMO : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("%+v", err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvs, err := storage.Open(ctx, conf)
	if err != nil {
		logger.Fatal("opening storage", err)
	}
	defer kvs.Close()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	st := store.New(
		store.WithLogger(logger),
		store.WithMiddleware(store.LoggingMiddleware(logger, conf.Debug)),
	)
	client := apisvc.NewClient(conf, logger)
	fetcher := store.NewFetcher(client, client, client, logger)

	// start CLI
	cli := commandLine{
		out:        os.Stdout,
		store:      st,
		session:    sessionsvc.New(kvs, client, st, validate, logger),
		api:        client,
		fetcher:    fetcher,
		listener:   notifysvc.NewListener(conf.Endpoints.Notify, st, logger),
		validate:   validate,
		translator: translator,
		newServer: func(addr string) devtools.Server {
			return devtools.NewServer(&devtools.Options{
				Address:    addr,
				Debug:      conf.Debug,
				Store:      st,
				Fetcher:    fetcher,
				Logger:     logger,
				Translator: translator,
			}, stop)
		},
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", errorMessage(err))
		}
		kvs.Close()
		os.Exit(1)
	}
}
