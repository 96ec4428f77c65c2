package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/auth"
	"github.com/trezcool/masomo-client/core/classroom"
)

func (cli *commandLine) login(ctx context.Context, uname, pwd string) error {
	profile, err := cli.session.Login(ctx, classroom.Credentials{Username: uname, Password: pwd})
	if err != nil {
		if _, ok := err.(*core.ValidationError); ok {
			return cli.validationError(err)
		}
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", profile.Name, profile.Username)
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}
	p := cli.store.State().Profile
	fmt.Fprintf(cli.out, "%s (%s) <%s>\n", p.Name, p.Username, p.Email)

	if claims, err := auth.ParseClaims(token); err == nil && claims.ExpiresAt > 0 {
		fmt.Fprintf(cli.out, "session expires %s\n", time.Unix(claims.ExpiresAt, 0).Format(time.RFC1123))
	}
	return nil
}
