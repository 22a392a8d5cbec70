package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/pipeline"
	"github.com/ppiankov/covidetl/internal/record"
)

const (
	mainPrompt = `Please enter the desired option:

    (1) Global bed capacity
    (2) Measures and restrictions by country
    (0) Exit program`
	sendPrompt = `
Do you want to send the results to the API?
    Type "yes" if you want to; otherwise, hit the Enter (Return) key
`
	invalidOptionMsg = "\nNot a valid option! Try again\n"
	onlyNumbersMsg   = "\nSorry, only numbers are valid! Try again\n"
)

var datasetPrompts = map[record.Dataset]string{
	record.DatasetBeds:     "\nBeds dataset chosen. What filter would you like to apply?\n",
	record.DatasetMeasures: "\nMeasures dataset chosen. What filter would you like to apply?\n",
}

var (
	errInvalidOption = errors.New("not a valid option")
	errOnlyNumbers   = errors.New("only numbers are valid")
	errInputClosed   = errors.New("input closed")
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose a dataset and filter from a numeric menu",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

type runFunc func(ds record.Dataset, s filter.Strategy, ask func() bool) error

// menu drives the numeric text interface.
type menu struct {
	in   *bufio.Scanner
	out  io.Writer
	topN int
	run  runFunc
}

func runMenu(cmd *cobra.Command, _ []string) error {
	defaults := runFlags{topN: filter.DefaultTopN, format: defaultFormat}
	st, err := resolveSettings(record.DatasetBeds, defaults)
	if err != nil {
		return err
	}
	m := newMenu(cmd.InOrStdin(), cmd.OutOrStdout(), st.opts.TopN,
		func(ds record.Dataset, s filter.Strategy, ask func() bool) error {
			st, err := resolveSettings(ds, defaults)
			if err != nil {
				return err
			}
			return execute(cmd, ds, s, st, ask)
		})
	return m.loop()
}

func newMenu(in io.Reader, out io.Writer, topN int, run runFunc) *menu {
	return &menu{in: bufio.NewScanner(in), out: out, topN: topN, run: run}
}

func (m *menu) loop() error {
	for {
		m.println(mainPrompt)
		choice, err := m.readOption(len(record.Datasets))
		switch {
		case errors.Is(err, errInputClosed):
			return nil
		case err != nil:
			continue
		case choice == 0:
			return nil
		}
		if err := m.chooseFilter(record.Datasets[choice-1]); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}
	}
}

func (m *menu) chooseFilter(ds record.Dataset) error {
	table, err := pipeline.Filters(ds)
	if err != nil {
		return err
	}
	for {
		m.println(datasetPrompts[ds])
		for _, s := range table {
			m.printf("    (%d) %s\n", s.ID, s.DisplayLabel(m.topN))
		}
		m.println("    (0) Go back\n")

		choice, err := m.readOption(len(table))
		switch {
		case errors.Is(err, errInputClosed):
			return err
		case err != nil:
			continue
		case choice == 0:
			return nil
		}

		s, err := table.Lookup(choice)
		if err == nil {
			err = m.run(ds, s, m.confirm)
		}
		if errors.Is(err, filter.ErrNotImplemented) {
			m.printf("\n%v\n\n", err)
			continue
		}
		if err != nil {
			return err
		}
	}
}

// readOption reads an option between 0 and limit, reporting invalid input.
func (m *menu) readOption(limit int) (int, error) {
	line, ok := m.readLine()
	if !ok {
		return 0, errInputClosed
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		m.printf("%s", onlyNumbersMsg)
		return 0, errOnlyNumbers
	}
	if n < 0 || n > limit {
		m.printf("%s", invalidOptionMsg)
		return 0, errInvalidOption
	}
	return n, nil
}

func (m *menu) confirm() bool {
	m.println(sendPrompt)
	line, ok := m.readLine()
	return ok && strings.EqualFold(line, "yes")
}

func (m *menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
