package cli

// This file contains loading of the build outputs every command starts
// from: package metadata, the binary list and the resolved test artifacts.

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/perfgo/nextest/binarylist"
	"github.com/perfgo/nextest/filter"
	"github.com/perfgo/nextest/metadata"
	"github.com/perfgo/nextest/model"
	"github.com/perfgo/nextest/output"
	"github.com/perfgo/nextest/pathmapper"
	"github.com/perfgo/nextest/runner"
	"github.com/perfgo/nextest/testlist"
)

// openInput opens path for reading, or the app's stdin for "-".
func (a *App) openInput(ctx *cli.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(ctx.App.Reader), nil
	}
	return os.Open(path)
}

func (a *App) loadGraph(ctx *cli.Context) (*metadata.Graph, error) {
	graph, err := metadata.Load(ctx.String("metadata"))
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("packages", graph.Len()).
		Str("workspace_root", graph.WorkspaceRoot).
		Msg("Loaded package metadata")

	return graph, nil
}

func (a *App) loadBinaryList(ctx *cli.Context, graph *metadata.Graph) (*binarylist.BinaryList, error) {
	if path := ctx.String("binaries-metadata"); path != "" {
		summary, err := model.LoadBinaryListSummary(path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug().Str("path", path).Int("binaries", len(summary.RustBinaries)).Msg("Loaded binary list")
		return binarylist.FromSummary(summary), nil
	}

	r, err := a.openInput(ctx, ctx.String("build-events"))
	if err != nil {
		return nil, fmt.Errorf("failed to open build events: %w", err)
	}
	defer r.Close()

	list, err := binarylist.FromMessages(r, graph)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Int("binaries", len(list.Binaries)).Msg("Read build events")
	return list, nil
}

func (a *App) loadArtifacts(ctx *cli.Context) ([]testlist.TestArtifact, error) {
	graph, err := a.loadGraph(ctx)
	if err != nil {
		return nil, err
	}

	list, err := a.loadBinaryList(ctx, graph)
	if err != nil {
		return nil, err
	}

	var platform model.BuildPlatform
	if s := ctx.String("platform-filter"); s != "" {
		platform, err = model.ParseBuildPlatform(s)
		if err != nil {
			return nil, err
		}
	}

	mapper := pathmapper.New(
		graph.WorkspaceRoot,
		firstNonEmpty(ctx.String("workspace-remap"), a.config.Remap.Workspace),
		firstNonEmpty(ctx.String("binaries-dir-remap"), a.config.Remap.BinariesDir),
	)

	return testlist.ArtifactsFromBinaryList(graph, list, mapper, platform)
}

func (a *App) filterBuilder(ctx *cli.Context) (*filter.Builder, error) {
	runIgnored, err := filter.ParseRunIgnored(ctx.String("run-ignored"))
	if err != nil {
		return nil, err
	}

	var partition *filter.PartitionerBuilder
	if s := ctx.String("partition"); s != "" {
		partition, err = filter.ParsePartition(s)
		if err != nil {
			return nil, err
		}
	}

	return filter.NewBuilder(runIgnored, partition, ctx.Args().Slice()), nil
}

// targetRunner resolves the runners from the environment, falling back to
// the config.
func (a *App) targetRunner() (*runner.TargetRunner, error) {
	return runner.FromEnv(os.Getenv, a.config.Runner.Host, a.config.Runner.Target)
}

func (a *App) outputFormat(ctx *cli.Context) (output.Format, bool, error) {
	name := ctx.String("format")
	if !ctx.IsSet("format") {
		name = a.config.List.Format
	}
	format, err := output.ParseFormat(name, ctx.Bool("detailed"))
	if err != nil {
		return output.Format{}, false, err
	}

	colorize, err := output.ShouldColorize(ctx.String("color"), ctx.App.Writer)
	if err != nil {
		return output.Format{}, false, err
	}
	return format, colorize, nil
}

func (a *App) jobs(ctx *cli.Context) int {
	if ctx.IsSet("jobs") {
		return ctx.Int("jobs")
	}
	return a.config.List.Jobs
}

// buildTestList runs the listing of every artifact. An interrupt stops
// the listing.
func (a *App) buildTestList(ctx *cli.Context) (*testlist.TestList, *runner.TargetRunner, error) {
	artifacts, err := a.loadArtifacts(ctx)
	if err != nil {
		return nil, nil, err
	}

	filterBuilder, err := a.filterBuilder(ctx)
	if err != nil {
		return nil, nil, err
	}

	targetRunner, err := a.targetRunner()
	if err != nil {
		return nil, nil, err
	}

	listCtx, stop, err := a.interruptible(ctx.Context)
	if err != nil {
		return nil, nil, err
	}
	defer stop()

	list, err := testlist.New(listCtx, artifacts, filterBuilder, targetRunner,
		testlist.WithJobs(a.jobs(ctx)),
		testlist.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tests: %w", err)
	}

	a.logger.Info().
		Int("binaries", list.BinaryCount()).
		Int("tests", list.TestCount()).
		Int("run", list.RunCount()).
		Int("skipped", list.SkipCount()).
		Msg("Listed tests")

	return list, targetRunner, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
