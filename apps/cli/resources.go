package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
)

func (cli *commandLine) listResource(ctx context.Context, kind, classID string, refresh bool) error {
	token, err := cli.requireLogin(ctx)
	if err != nil {
		return err
	}

	var thunk store.Thunk
	switch {
	case kind == "quizzes" && refresh:
		thunk = cli.fetcher.RefreshQuizzes(token, classID)
	case kind == "quizzes":
		thunk = cli.fetcher.FetchQuizzes(token, classID)
	case kind == "discussions" && refresh:
		thunk = cli.fetcher.RefreshDiscussions(token, classID)
	case kind == "discussions":
		thunk = cli.fetcher.FetchDiscussions(token, classID)
	case kind == "assignments" && refresh:
		thunk = cli.fetcher.RefreshAssignments(token, classID)
	default:
		thunk = cli.fetcher.FetchAssignments(token, classID)
	}
	if err = cli.store.Run(ctx, thunk); err != nil {
		return err
	}

	state := cli.store.State()
	switch kind {
	case "quizzes":
		e, _ := state.QuizzesFor(classID)
		if e.Errored {
			return errors.Errorf("could not load the quizzes of %s, try again with -refresh", classID)
		}
		cli.printQuizzes(e.Data)
	case "discussions":
		e, _ := state.DiscussionsFor(classID)
		if e.Errored {
			return errors.Errorf("could not load the discussions of %s, try again with -refresh", classID)
		}
		cli.store.Dispatch(store.ClearUnread(classID))
		cli.printDiscussions(e.Data)
	default:
		e, _ := state.AssignmentsFor(classID)
		if e.Errored {
			return errors.Errorf("could not load the assignments of %s, try again with -refresh", classID)
		}
		cli.printAssignments(e.Data)
	}
	return nil
}

func (cli *commandLine) printQuizzes(b classroom.QuizBuckets) {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "STATUS\tID\tTITLE\tENDS")
	for _, bucket := range []struct {
		name    string
		quizzes []classroom.Quiz
	}{
		{"live", b.Live},
		{"expired", b.Expired},
		{"scored", b.Scored},
	} {
		for _, q := range bucket.quizzes {
			ends := "-"
			if end, ok := q.End(); ok {
				ends = end.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", bucket.name, q.QuizID, q.Title, ends)
		}
	}
}

func (cli *commandLine) printDiscussions(ds []classroom.Discussion) {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCOMMENTS\tSTATUS")
	for _, d := range ds {
		status := "open"
		switch {
		case d.ClosedPermanently:
			status = "closed for good"
		case d.Closed:
			status = "closed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", d.ID, d.Title, d.Author.Username, d.Comments, status)
	}
}

func (cli *commandLine) printAssignments(as []classroom.Assignment) {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tDUE")
	for _, a := range as {
		due := "-"
		if a.DueDate.Valid {
			due = a.DueDate.Time.Local().Format(time.RFC1123)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Title, due)
	}
}
