// Package cli implements the interactive command loop: tokenizing, a plain
// command-to-handler lookup table, and the translation of core errors into
// user-facing text. All contact logic lives in the book package; this layer
// only routes arguments and formats results.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/importer"
)

// errNotFound marks an absent record where the caller expected presence.
// Inside the book absence is just a nil result; at this boundary it becomes
// the fixed "Contact not found." message.
var errNotFound = errors.New("contact not found")

// App wires the command loop to its collaborators.
type App struct {
	Book     *book.AddressBook
	Importer *importer.Importer
	T        *Translator

	In  io.Reader
	Out io.Writer

	// WindowDays is the horizon of the birthdays command.
	WindowDays int

	// WebUser and WebPass are fallback credentials for import-url.
	WebUser string
	WebPass string

	// OnChange runs after every successful mutation (feed refresh hook).
	OnChange func()
}

// command binds an argument-count precondition to a handler.
type command struct {
	minArgs int
	run     func(ctx context.Context, args []string) (string, error)
}

// commands builds the dispatch table. Plain configuration, not logic:
// command text maps straight to a handler.
func (a *App) commands() map[string]command {
	return map[string]command{
		config.CmdHello:        {0, a.handleHello},
		config.CmdAdd:          {2, a.handleAdd},
		config.CmdChange:       {3, a.handleChange},
		config.CmdPhone:        {1, a.handlePhone},
		config.CmdAll:          {0, a.handleAll},
		config.CmdAddBirthday:  {2, a.handleAddBirthday},
		config.CmdShowBirthday: {1, a.handleShowBirthday},
		config.CmdBirthdays:    {0, a.handleBirthdays},
		config.CmdDelete:       {1, a.handleDelete},
		config.CmdImport:       {1, a.handleImport},
		config.CmdImportURL:    {1, a.handleImportURL},
		config.CmdRemember:     {2, a.handleRemember},
		config.CmdHelp:         {0, a.handleHelp},
	}
}

// Run reads commands until close/exit, EOF, or context cancellation.
func (a *App) Run(ctx context.Context) error {
	commands := a.commands()
	scanner := bufio.NewScanner(a.In)

	fmt.Fprintln(a.Out, a.T.Msg(config.TKeyWelcome))

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompCLI)
			return nil
		default:
		}

		fmt.Fprint(a.Out, config.Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		name := strings.ToLower(fields[0])
		args := fields[1:]

		if name == config.CmdClose || name == config.CmdExit {
			fmt.Fprintln(a.Out, a.T.Msg(config.TKeyGoodbye))
			return nil
		}

		cmd, ok := commands[name]
		if !ok {
			fmt.Fprintln(a.Out, a.T.Msg(config.TKeyErrUnknownCmd))
			continue
		}

		slog.Debug("Dispatching command",
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyCommand, name,
		)
		fmt.Fprintln(a.Out, a.dispatch(ctx, cmd, args))
	}
}

// dispatch enforces the argument-count precondition and translates failures.
func (a *App) dispatch(ctx context.Context, cmd command, args []string) string {
	if len(args) < cmd.minArgs {
		return a.T.Msg(config.TKeyErrArgs)
	}
	out, err := cmd.run(ctx, args)
	if err != nil {
		return a.translate(err)
	}
	return out
}

// translate maps core failures to their user-facing texts.
// Unrecognized errors surface verbatim.
func (a *App) translate(err error) string {
	switch {
	case errors.Is(err, errNotFound):
		return a.T.Msg(config.TKeyErrNotFound)
	case errors.Is(err, book.ErrInvalidPhone):
		return a.T.Msg(config.TKeyErrInvalidPhone)
	case errors.Is(err, book.ErrInvalidDate):
		return a.T.Msg(config.TKeyErrInvalidDate)
	case errors.Is(err, book.ErrPhoneNotFound):
		return a.T.Msg(config.TKeyErrPhoneMissing)
	case errors.Is(err, book.ErrEmptyName):
		return a.T.Msg(config.TKeyErrEmptyName)
	default:
		return err.Error()
	}
}

// notifyChange fires the mutation hook, if any.
func (a *App) notifyChange() {
	if a.OnChange != nil {
		a.OnChange()
	}
}

func (a *App) handleHello(context.Context, []string) (string, error) {
	return a.T.Msg(config.TKeyGreeting), nil
}

func (a *App) handleHelp(context.Context, []string) (string, error) {
	return a.T.Msg(config.TKeyHelp), nil
}

// handleAdd creates the record on first reference to a new name, otherwise
// appends the phone to the existing record.
func (a *App) handleAdd(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]

	if rec := a.Book.Find(name); rec != nil {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		a.notifyChange()
		return a.T.Msg(config.TKeyContactUpdated), nil
	}

	rec, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.Add(rec)
	a.notifyChange()
	return a.T.Msg(config.TKeyContactAdded), nil
}

func (a *App) handleChange(_ context.Context, args []string) (string, error) {
	rec := a.Book.Find(args[0])
	if rec == nil {
		return "", errNotFound
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	a.notifyChange()
	return a.T.Msg(config.TKeyPhoneChanged), nil
}

func (a *App) handlePhone(_ context.Context, args []string) (string, error) {
	rec := a.Book.Find(args[0])
	if rec == nil {
		return "", errNotFound
	}

	phones := rec.Phones()
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return strings.Join(values, config.PhoneSeparator), nil
}

func (a *App) handleAll(context.Context, []string) (string, error) {
	records := a.Book.Records()
	if len(records) == 0 {
		return a.T.Msg(config.TKeyBookEmpty), nil
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (a *App) handleAddBirthday(_ context.Context, args []string) (string, error) {
	rec := a.Book.Find(args[0])
	if rec == nil {
		return "", errNotFound
	}
	if err := rec.SetBirthday(args[1]); err != nil {
		return "", err
	}
	a.notifyChange()
	return a.T.Msg(config.TKeyBirthdayAdded), nil
}

func (a *App) handleShowBirthday(_ context.Context, args []string) (string, error) {
	rec := a.Book.Find(args[0])
	if rec == nil {
		return "", errNotFound
	}
	if rec.Birthday() == nil {
		return a.T.Msg(config.TKeyNoBirthday), nil
	}
	return rec.Birthday().String(), nil
}

func (a *App) handleBirthdays(context.Context, []string) (string, error) {
	upcoming := a.Book.Upcoming(a.WindowDays)
	slog.Debug("Birthday query finished",
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyWindow, a.WindowDays,
		config.LogKeyCount, len(upcoming),
	)
	if len(upcoming) == 0 {
		return a.T.Msg(config.TKeyNoUpcoming), nil
	}

	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = a.T.MsgData(config.TKeyCongratulate, map[string]any{
			"Name": u.Name,
			"Date": u.Congratulation.Format(config.DateFormatDisplay),
		})
	}
	return strings.Join(lines, "\n"), nil
}

func (a *App) handleDelete(_ context.Context, args []string) (string, error) {
	// Deleting an absent name is a no-op, not a failure.
	a.Book.Delete(args[0])
	a.notifyChange()
	return a.T.Msg(config.TKeyContactDeleted), nil
}

func (a *App) handleImport(ctx context.Context, args []string) (string, error) {
	count, err := a.Importer.ImportFile(ctx, args[0], a.Book)
	if err != nil {
		return "", err
	}
	a.notifyChange()
	return a.T.MsgData(config.TKeyImported, map[string]any{"Count": count}), nil
}

func (a *App) handleImportURL(ctx context.Context, args []string) (string, error) {
	url := args[0]

	user := a.WebUser
	if len(args) > 1 {
		user = args[1]
	}

	pass := a.WebPass
	if user != "" && pass == "" {
		if p, err := importer.LookupPassword(user); err == nil {
			pass = p
		} else {
			slog.Debug(config.MsgSecretLookup,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
		}
	}

	count, err := a.Importer.ImportURL(ctx, url, user, pass, a.Book)
	if err != nil {
		return "", err
	}
	a.notifyChange()
	return a.T.MsgData(config.TKeyImported, map[string]any{"Count": count}), nil
}

func (a *App) handleRemember(_ context.Context, args []string) (string, error) {
	if err := importer.StorePassword(args[0], args[1]); err != nil {
		return "", err
	}
	return a.T.Msg(config.TKeySecretSaved), nil
}
