package cli

// This file contains the list-binaries and list commands.

import (
	"io"

	"github.com/urfave/cli/v2"
)

func (a *App) listBinaries(ctx *cli.Context) error {
	graph, err := a.loadGraph(ctx)
	if err != nil {
		return err
	}

	list, err := a.loadBinaryList(ctx, graph)
	if err != nil {
		return err
	}

	format, colorize, err := a.outputFormat(ctx)
	if err != nil {
		return err
	}

	if err := list.Write(format, ctx.App.Writer, colorize); err != nil {
		return err
	}
	if format.IsSerializable() {
		_, err = io.WriteString(ctx.App.Writer, "\n")
	}
	return err
}

func (a *App) list(ctx *cli.Context) error {
	format, colorize, err := a.outputFormat(ctx)
	if err != nil {
		return err
	}

	list, _, err := a.buildTestList(ctx)
	if err != nil {
		return err
	}

	if err := list.Write(format, ctx.App.Writer, colorize); err != nil {
		return err
	}
	if format.IsSerializable() {
		_, err = io.WriteString(ctx.App.Writer, "\n")
	}
	return err
}
