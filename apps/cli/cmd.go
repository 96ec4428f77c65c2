package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/masomo-client/apps/devtools"
	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	stdinFd          = int(os.Stdin.Fd())

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in, run: masomo login -username USERNAME")
)

type (
	sessionManager interface {
		Restore(ctx context.Context) (bool, error)
		Login(ctx context.Context, creds classroom.Credentials) (classroom.Profile, error)
		Logout(ctx context.Context) error
		HandleError(ctx context.Context, err error) bool
	}

	classAPI interface {
		ListClasses(ctx context.Context, token string) ([]classroom.Class, error)
		GetClass(ctx context.Context, token, classID string) (classroom.Class, error)
		JoinClass(ctx context.Context, token string, jc classroom.JoinClass) (classroom.Class, error)
		UpdateClassPhoto(ctx context.Context, token string, up classroom.UpdateClassPhoto) (classroom.Class, error)
		FetchResults(ctx context.Context, token, classID, quizID string) ([]classroom.Result, error)
	}

	notifyListener interface {
		Listen(ctx context.Context, token string) error
	}
)

type commandLine struct {
	out        io.Writer
	store      *store.Store
	session    sessionManager
	api        classAPI
	fetcher    *store.Fetcher
	listener   notifyListener
	validate   *validator.Validate
	translator ut.Translator
	newServer  func(addr string) devtools.Server
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME                 - log in; the password is prompted next")
	fmt.Fprintln(cli.out, "  logout                                   - forget the saved session")
	fmt.Fprintln(cli.out, "  whoami                                   - show the logged-in user")
	fmt.Fprintln(cli.out, "  classes                                  - list your classes")
	fmt.Fprintln(cli.out, "  join -code CODE                          - join a class")
	fmt.Fprintln(cli.out, "  quizzes -class ID [-refresh]             - list the quizzes of a class")
	fmt.Fprintln(cli.out, "  discussions -class ID [-refresh]         - list the discussions of a class")
	fmt.Fprintln(cli.out, "  assignments -class ID [-refresh]         - list the assignments of a class")
	fmt.Fprintln(cli.out, "  results -class ID -quiz ID               - show the results of a quiz")
	fmt.Fprintln(cli.out, "  photo -class ID -file PATH               - update the photo of a class you own")
	fmt.Fprintln(cli.out, "  listen                                   - print live class notifications")
	fmt.Fprintln(cli.out, "  devtools [-addr HOST:PORT]               - serve the client state for inspection")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	err := cli.dispatch(ctx, args[1], args[2:])
	if err != nil && cli.session.HandleError(ctx, err) {
		return errNotLoggedIn
	}
	return err
}

func (cli *commandLine) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		loginCmd := cli.flagSet("login")
		username := loginCmd.String("username", "", "Your username or email. The password will be prompted next.")
		if err := loginCmd.Parse(args); err != nil {
			return err
		}
		if *username == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(stdinFd)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *username, string(pwd))

	case "logout":
		return cli.session.Logout(ctx)

	case "whoami":
		return cli.whoami(ctx)

	case "classes":
		return cli.listClasses(ctx)

	case "join":
		joinCmd := cli.flagSet("join")
		code := joinCmd.String("code", "", "The join code shared by the class owner.")
		if err := joinCmd.Parse(args); err != nil {
			return err
		}
		if *code == "" {
			joinCmd.Usage()
			return errHelp
		}
		return cli.joinClass(ctx, *code)

	case "quizzes", "discussions", "assignments":
		resCmd := cli.flagSet(cmd)
		classID := resCmd.String("class", "", "The class id.")
		refresh := resCmd.Bool("refresh", false, "Reload from the server even if already loaded.")
		if err := resCmd.Parse(args); err != nil {
			return err
		}
		if *classID == "" {
			resCmd.Usage()
			return errHelp
		}
		return cli.listResource(ctx, cmd, *classID, *refresh)

	case "results":
		resultsCmd := cli.flagSet("results")
		classID := resultsCmd.String("class", "", "The class id.")
		quizID := resultsCmd.String("quiz", "", "The quiz id.")
		if err := resultsCmd.Parse(args); err != nil {
			return err
		}
		if *classID == "" || *quizID == "" {
			resultsCmd.Usage()
			return errHelp
		}
		return cli.results(ctx, *classID, *quizID)

	case "photo":
		photoCmd := cli.flagSet("photo")
		classID := photoCmd.String("class", "", "The class id.")
		file := photoCmd.String("file", "", "Path of a JPEG, PNG or WebP image.")
		if err := photoCmd.Parse(args); err != nil {
			return err
		}
		if *classID == "" || *file == "" {
			photoCmd.Usage()
			return errHelp
		}
		return cli.updatePhoto(ctx, *classID, *file)

	case "listen":
		return cli.listen(ctx)

	case "devtools":
		devtoolsCmd := cli.flagSet("devtools")
		addr := devtoolsCmd.String("addr", "localhost:9229", "Address to listen on.")
		if err := devtoolsCmd.Parse(args); err != nil {
			return err
		}
		return cli.serveDevtools(ctx, *addr)

	default:
		cli.printUsage()
		return errHelp
	}
}

// requireLogin restores the saved session and returns its token.
func (cli *commandLine) requireLogin(ctx context.Context) (string, error) {
	loggedIn, err := cli.session.Restore(ctx)
	if err != nil {
		return "", err
	}
	if !loggedIn {
		return "", errNotLoggedIn
	}
	return cli.store.State().Token, nil
}

// validationError formats the field errors of err, if any.
func (cli *commandLine) validationError(err error) error {
	fldErrs := core.FieldErrors(err, cli.translator)
	if fldErrs == nil {
		if vErr, ok := err.(*core.ValidationError); ok {
			fldErrs = core.FieldErrors(vErr.Err, cli.translator)
		}
	}
	if len(fldErrs) == 0 {
		return err
	}
	flds := make([]string, 0, len(fldErrs))
	for fld := range fldErrs {
		flds = append(flds, fld)
	}
	sort.Strings(flds)

	msg := "invalid input:"
	for _, fld := range flds {
		msg += fmt.Sprintf(" %s: %s;", fld, fldErrs[fld])
	}
	return errors.New(msg)
}

// errorMessage is what gets printed for err: API failures get the user facing text.
func errorMessage(err error) string {
	if core.APIErrorCode(err) != 0 {
		return core.UserMessage(err)
	}
	return err.Error()
}
