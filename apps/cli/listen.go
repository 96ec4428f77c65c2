package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core/store"
)

// listen prints a line every time a class gets new discussion activity, until ctx is done.
func (cli *commandLine) listen(ctx context.Context) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}

	prev := cli.store.State().Unread
	unsubscribe := cli.store.Subscribe(func(s store.State) {
		for classID, n := range s.Unread {
			if n > prev[classID] {
				fmt.Fprintf(cli.out, "new activity in %s (%d unread)\n", classID, n)
			}
		}
		prev = s.Unread
	})
	defer unsubscribe()

	fmt.Fprintln(cli.out, "Listening for notifications, press Ctrl+C to stop")
	return cli.listener.Listen(ctx, token)
}

// serveDevtools runs the devtools server until ctx is done.
func (cli *commandLine) serveDevtools(ctx context.Context, addr string) error {
	if _, err := cli.requireLogin(ctx); err != nil && err != errNotLoggedIn {
		return err
	}

	srv := cli.newServer(addr)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	fmt.Fprintf(cli.out, "Devtools listening on http://%s\n", addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "serving devtools")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return errors.Wrap(err, "stopping devtools")
		}
		return nil
	}
}
