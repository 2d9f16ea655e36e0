package cli

// This file contains the plan command, which prints the invocation of
// every test that would run.

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/output"
	"github.com/perfgo/nextest/testlist"
)

type plannedTest struct {
	BinaryID string            `json:"binary-id"`
	Name     string            `json:"name"`
	Command  *testlist.Command `json:"command"`
}

func (a *App) plan(ctx *cli.Context) error {
	format, colorize, err := a.outputFormat(ctx)
	if err != nil {
		return err
	}

	list, targetRunner, err := a.buildTestList(ctx)
	if err != nil {
		return err
	}

	planned := []plannedTest{}
	for instance := range list.Tests() {
		if !instance.Info().FilterMatch.IsMatch() {
			continue
		}
		planned = append(planned, plannedTest{
			BinaryID: instance.Suite().BinaryID,
			Name:     instance.Name(),
			Command:  instance.Command(targetRunner),
		})
	}

	w := ctx.App.Writer
	if format.IsSerializable() {
		if err := model.EncodeJSON(w, "test plan", planned, format.Kind == output.JSONPretty); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	}

	return writePlanHuman(w, planned, format.Verbose, output.NewStyles(colorize))
}

func writePlanHuman(w io.Writer, planned []plannedTest, verbose bool, styles output.Styles) error {
	var b strings.Builder
	for _, p := range planned {
		fmt.Fprintf(&b, "%s %s\n", output.Paint(styles.BinaryID, p.BinaryID), styles.FormatTestName(p.Name))
		fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "cwd:"), p.Command.Dir)
		fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "command:"), p.Command)
		if verbose {
			for _, kv := range p.Command.Environ() {
				fmt.Fprintf(&b, "  %s %s\n", output.Paint(styles.Field, "env:"), kv)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
