package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/screen"
)

const prompt = "> "

var (
	errUsage   = errors.New("usage")
	errEditing = errors.New("finish or cancel the current edit first")
	errNoEdit  = errors.New("nothing to save, use edit <id> first")
)

// Session interprets one command per line against a screen.
type Session struct {
	scr *screen.Screen
	r   *Renderer
	out io.Writer
}

func NewSession(scr *screen.Screen, r *Renderer, out io.Writer) *Session {
	return &Session{scr: scr, r: r, out: out}
}

// Run reads commands from in until quit, end of input, or ctx is cancelled.
// Cancellation returns without waiting for the pending line.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if err := s.show(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(s.out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := s.Execute(ctx, line)
			if err != nil || quit {
				return err
			}
		}
	}
}

// Execute runs a single command line. User mistakes are reported on the
// output; the returned error is reserved for store failures.
func (s *Session) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.help()
		return false, nil
	case "categories":
		s.r.Categories(core.Categories())
		return false, nil
	case "add":
		err = s.add(ctx, args)
	case "save":
		err = s.save(ctx, args)
	case "edit":
		err = s.edit(ctx, args)
	case "cancel":
		s.scr.CancelEdit()
	case "delete", "rm":
		err = s.delete(ctx, args)
	case "budget":
		if len(args) != 1 {
			err = usage("budget <amount>")
			break
		}
		s.scr.SetBudget(args[0])
	case "reset":
		s.scr.ResetBudget()
	case "list":
		s.scr.ShowList()
	case "chart":
		s.scr.ShowChart()
	case "kind":
		err = s.kind(args)
	case "theme":
		s.r.Info("Theme: %s", s.scr.ToggleTheme())
	default:
		s.r.Warn("Unknown command %q, type help for the list", cmd)
		return false, nil
	}

	switch {
	case errors.Is(err, errUsage), errors.Is(err, errEditing), errors.Is(err, errNoEdit):
		s.r.Warn("%v", err)
		return false, nil
	case errors.Is(err, ledger.ErrNotFound):
		s.r.Warn("No expense with that id")
		return false, nil
	case err != nil:
		return false, err
	}
	return false, s.show(ctx)
}

func (s *Session) show(ctx context.Context) error {
	st, err := s.scr.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.r.Render(st)
	s.r.Form(st.Form)
	return nil
}

func (s *Session) add(ctx context.Context, args []string) error {
	st, err := s.scr.Snapshot(ctx)
	if err != nil {
		return err
	}
	if st.Form.Editing() {
		return errEditing
	}
	return s.submit(ctx, args, "add <amount> <category> [note...]")
}

func (s *Session) save(ctx context.Context, args []string) error {
	st, err := s.scr.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !st.Form.Editing() {
		return errNoEdit
	}
	return s.submit(ctx, args, "save <amount> <category> [note...]")
}

// submit passes input straight to the form. Amounts and categories that do
// not parse are ignored like on the web screen, with the form left as typed.
func (s *Session) submit(ctx context.Context, args []string, syntax string) error {
	if len(args) < 2 {
		return usage(syntax)
	}
	category := args[1]
	if c, ok := MatchCategory(category); ok {
		category = c.String()
	}
	_, _, err := s.scr.Submit(ctx, args[0], strings.Join(args[2:], " "), category)
	if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrUnknownCategory) {
		return nil
	}
	return err
}

func (s *Session) edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	_, err = s.scr.BeginEdit(ctx, id)
	return err
}

func (s *Session) delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	return s.scr.Delete(ctx, id)
}

func (s *Session) kind(args []string) error {
	if len(args) == 0 {
		s.r.Info("Chart: %s", s.scr.ToggleChartKind())
		return nil
	}
	k, err := screen.ParseChartKind(strings.ToLower(args[0]))
	if err != nil {
		return usage("kind pie|bar")
	}
	return s.scr.SetChartKind(k)
}

func (s *Session) help() {
	fmt.Fprint(s.out, `Commands:
  add <amount> <category> [note...]   add an expense
  edit <id>                           load an expense into the form
  save <amount> <category> [note...]  save changes to the expense being edited
  cancel                              drop the current edit
  delete <id>                         remove an expense
  budget <amount>                     set the monthly budget
  reset                               clear the budget
  list | chart                        switch view
  kind [pie|bar]                      set or toggle the chart kind
  theme                               toggle light/dark
  categories                          show categories
  quit                                leave
`)
}

func parseID(args []string, syntax string) (int64, error) {
	if len(args) != 1 {
		return 0, usage(syntax)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usage(syntax)
	}
	return id, nil
}

func usage(msg string) error {
	return fmt.Errorf("%w: %s", errUsage, msg)
}
