package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/finkeeper/finkeeper/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "manage the ledger interactively (default)" }
func (*shellCmd) Usage() string {
	return `fk shell

  Displays the ledger and a menu of numbered actions. See 'fk topic shell'.
`
}

func (*shellCmd) SetFlags(f *flag.FlagSet) {}

func (*shellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}
	sh := NewShell(s, os.Stdin, os.Stdout)
	sh.Currency = cfg.Currency
	sh.Render = renderMarkdown
	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", s.Path(), err)
	}
	// the shell never fails, errors are reported and the session goes on.
	return subcommands.ExitSuccess
}

// Shell is the menu driven console interface to a session.
type Shell struct {
	session *finkeeper.Session
	in      *bufio.Reader
	out     io.Writer

	Currency string                 // currency used to display amounts
	Render   func(md string) string // formats markdown for the console
	Today    func() date.Date
}

// NewShell returns a shell reading commands from in and writing to out.
// Markdown is printed as is.
func NewShell(s *finkeeper.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		session: s,
		in:      bufio.NewReader(in),
		out:     out,
		Render:  func(md string) string { return md },
		Today:   date.Today,
	}
}

// Run reads and executes commands until the user exits or the input ends.
// In both cases, the ledger is saved, and any error saving it is returned.
func (sh *Shell) Run() error {
	for {
		sh.show()
		choice, err := sh.readInt(sh.menu())
		if err == nil {
			err = sh.execute(choice)
		}
		if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
			return sh.session.Close()
		}
		if err != nil {
			// the input is unreadable, there is nothing more to do.
			return errors.Join(err, sh.session.Close())
		}
	}
}

var errExit = errors.New("exit")

func (sh *Shell) execute(choice int) error {
	switch {
	case choice == 0:
		return errExit
	case choice == 1:
		return sh.add(false)
	case choice == 2:
		return sh.add(true)
	case choice == 3:
		return sh.remove()
	case choice == 4:
		return sh.sort()
	case choice == 5:
		return sh.filter()
	case choice == 6 && sh.session.Filtered():
		sh.session.ClearFilters()
		return nil
	default:
		sh.printf("Unknown command %d.\n", choice)
		return nil
	}
}

func (sh *Shell) show() {
	ledger := renderer.NewLedger(sh.session.View(), renderer.Options{
		Currency: sh.Currency,
		ShowIDs:  true,
		Filters:  sh.session.Filters(),
	})
	sh.printf("%s", sh.Render(renderer.RenderLedger(ledger)))
}

func (sh *Shell) menu() string {
	var b strings.Builder
	b.WriteString("0: save and exit\n1: add income\n2: add expense\n3: remove\n4: sort\n5: filter\n")
	if sh.session.Filtered() {
		b.WriteString("6: clear filters\n")
	}
	b.WriteString("> ")
	return b.String()
}

func (sh *Shell) add(expense bool) error {
	on, err := sh.readDate("Date (1: today, 2: yesterday, or d.M.yyyy): ")
	if err != nil {
		return err
	}
	reason, err := sh.readReason("Reason: ")
	if err != nil {
		return err
	}
	amount, err := sh.readAmount("Amount: ")
	if err != nil {
		return err
	}

	r := finkeeper.NewIncome(on, reason, amount)
	if expense {
		r = finkeeper.NewExpense(on, reason, amount)
	}
	if err := sh.session.AddRecord(r); err != nil {
		sh.printf("Could not save the ledger: %v\n", err)
		return nil
	}
	sh.printf("Added %v.\n", r)
	return nil
}

func (sh *Shell) remove() error {
	n := sh.session.View().Len()
	if n == 0 {
		sh.printf("Nothing to remove.\n")
		return nil
	}
	for {
		i, err := sh.readInt(fmt.Sprintf("ID to remove (0 to %d, -1 to cancel): ", n-1))
		if err != nil {
			return err
		}
		err = sh.session.RemoveAt(i)
		switch {
		case err == nil:
			sh.printf("Removed record %d.\n", i)
			return nil
		case errors.Is(err, finkeeper.ErrCancelled):
			return nil
		case errors.Is(err, finkeeper.ErrIndexOutOfRange):
			sh.printf("There is no record %d.\n", i)
		default:
			sh.printf("Could not save the ledger: %v\n", err)
			return nil
		}
	}
}

func (sh *Shell) sort() error {
	orders := map[int]finkeeper.SortOrder{
		1: finkeeper.DateDesc,
		2: finkeeper.DateAsc,
		3: finkeeper.AmountDesc,
		4: finkeeper.AmountAsc,
	}
	for {
		choice, err := sh.readInt("-1: back\n1: newest first\n2: oldest first\n3: highest amount first\n4: lowest amount first\n> ")
		if err != nil || choice == -1 {
			return err
		}
		if order, ok := orders[choice]; ok {
			sh.session.Sort(order)
			return nil
		}
		sh.printf("Unknown sort %d.\n", choice)
	}
}

func (sh *Shell) filter() error {
	for {
		choice, err := sh.readInt("-1: back\n1: date range\n2: amount range\n3: incomes only\n4: expenses only\n> ")
		if err != nil || choice == -1 {
			return err
		}
		var f finkeeper.Filter
		switch choice {
		case 1:
			f, err = sh.readRange("date", finkeeper.ParseDateFilter)
		case 2:
			f, err = sh.readRange("amount", finkeeper.ParseAmountFilter)
		case 3:
			f = finkeeper.IncomeOnly()
		case 4:
			f = finkeeper.ExpenseOnly()
		default:
			sh.printf("Unknown filter %d.\n", choice)
			continue
		}
		if err != nil {
			return err
		}
		sh.session.ApplyFilter(f)
		return nil
	}
}

// readRange prompts for both bounds until parse accepts them.
func (sh *Shell) readRange(what string, parse func(from, to string) (finkeeper.Filter, error)) (finkeeper.Filter, error) {
	for {
		from, err := sh.readLine(fmt.Sprintf("From %s (empty for no limit): ", what))
		if err != nil {
			return finkeeper.Filter{}, err
		}
		to, err := sh.readLine(fmt.Sprintf("To %s (empty for no limit): ", what))
		if err != nil {
			return finkeeper.Filter{}, err
		}
		f, err := parse(from, to)
		if err == nil {
			return f, nil
		}
		sh.printf("%v.\n", err)
	}
}

func (sh *Shell) readDate(prompt string) (date.Date, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return date.Date{}, err
		}
		today := sh.Today()
		switch line = strings.TrimSpace(line); line {
		case "1":
			return today, nil
		case "2":
			return today.Add(-1), nil
		}
		on, err := date.ParseFrom(line, today)
		if err == nil {
			return on, nil
		}
		sh.printf("%v.\n", err)
	}
}

// readAmount prompts for a positive or zero amount.
func (sh *Shell) readAmount(prompt string) (decimal.Decimal, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := finkeeper.ParseAmount(line)
		switch {
		case err != nil:
			sh.printf("%v.\n", err)
		case amount.IsNegative():
			sh.printf("Type the amount without sign.\n")
		default:
			return amount, nil
		}
	}
}

func (sh *Shell) readInt(prompt string) (int, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return i, nil
		}
		sh.printf("%q is not a number.\n", strings.TrimSpace(line))
	}
}

// readReason prompts for a reason short enough to be saved.
func (sh *Shell) readReason(prompt string) (string, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return "", err
		}
		if len(line) <= math.MaxUint16 {
			return line, nil
		}
		sh.printf("The reason is too long (%d bytes, at most %d).\n", len(line), math.MaxUint16)
	}
}

// readLine prints prompt and returns the next input line, without its line
// ending, or io.EOF at the end of the input. Lines have no length limit.
func (sh *Shell) readLine(prompt string) (string, error) {
	sh.printf("%s", prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}
