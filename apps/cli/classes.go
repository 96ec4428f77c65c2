package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
)

var errNotOwner = errors.New("only the class owner can do that")

func (cli *commandLine) listClasses(ctx context.Context) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}
	classes, err := cli.api.ListClasses(ctx, token)
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}

	state := cli.store.State()
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tOWNER\tUNREAD")
	for _, c := range classes {
		owner := c.Owner.Username
		if c.IsOwner(state.Profile) {
			owner = "you"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Subject, owner, state.UnreadFor(c.ID))
	}
	return w.Flush()
}

func (cli *commandLine) joinClass(ctx context.Context, code string) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}
	jc := classroom.JoinClass{JoinCode: code}
	if err = jc.Validate(cli.validate); err != nil {
		return cli.validationError(err)
	}
	class, err := cli.api.JoinClass(ctx, token, jc)
	if err != nil {
		return errors.Wrap(err, "joining class")
	}
	cli.store.Dispatch(store.SetCurrentClass(&class))
	fmt.Fprintf(cli.out, "Joined %s (%s)\n", class.Name, class.ID)
	return nil
}

// selectClass loads classID and makes it the current class.
func (cli *commandLine) selectClass(ctx context.Context, token, classID string) (classroom.Class, error) {
	class, err := cli.api.GetClass(ctx, token, classID)
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "getting class")
	}
	cli.store.Dispatch(store.SetCurrentClass(&class))
	return class, nil
}

func (cli *commandLine) results(ctx context.Context, classID, quizID string) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}
	results, err := cli.api.FetchResults(ctx, token, classID, quizID)
	if err != nil {
		return errors.Wrap(err, "fetching results")
	}
	if len(results) == 0 {
		fmt.Fprintln(cli.out, "No results yet")
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tSCORE\tSUBMITTED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d/%d\t%s\n", r.Username, r.Score, r.Total, r.Submitted.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (cli *commandLine) updatePhoto(ctx context.Context, classID, path string) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}
	if _, err = cli.selectClass(ctx, token, classID); err != nil {
		return err
	}
	if !cli.store.State().IsOwner() {
		return errNotOwner
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading photo")
	}
	up := classroom.UpdateClassPhoto{
		ClassID:     classID,
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(content),
		Content:     content,
	}
	if err = up.Validate(cli.validate); err != nil {
		return cli.validationError(err)
	}
	class, err := cli.api.UpdateClassPhoto(ctx, token, up)
	if err != nil {
		return errors.Wrap(err, "updating photo")
	}
	cli.store.Dispatch(store.SetCurrentClass(&class))
	fmt.Fprintf(cli.out, "Photo updated: %s\n", class.Photo)
	return nil
}
