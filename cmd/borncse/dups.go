package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/born-ml/cse/internal/cse/canon"
	"github.com/born-ml/cse/internal/ir"
	"github.com/born-ml/cse/internal/onnx"
	"github.com/born-ml/cse/internal/parallel"
)

// DupsCommand reports structurally duplicate nodes and initializers of ONNX models.
type DupsCommand struct {
	Ui cli.Ui

	// LogOutput receives log lines. Stderr when nil.
	LogOutput io.Writer
}

func (c *DupsCommand) Help() string {
	helpText := `
Usage: borncse dups [options] MODEL.onnx...

  Finds nodes that compute the same value as an earlier node, and
  initializers holding the same constant. Models are analyzed in parallel
  and reported in argument order.

Options:

  -max-elements=N   Skip tensors with more than N elements. 0 means no limit.

  -log-level=LEVEL  One of trace, debug, info, warn, error. Default warn.

  -jobs=N           Number of models analyzed at once. Defaults to the CPU count.

  -verbose          Also list skipped nodes.
`
	return strings.TrimSpace(helpText)
}

func (c *DupsCommand) Synopsis() string {
	return "Report duplicate nodes and initializers"
}

func (c *DupsCommand) Run(args []string) int {
	var (
		maxElements int64
		logLevel    string
		jobs        int
		verbose     bool
	)
	fs := flag.NewFlagSet("dups", flag.ContinueOnError)
	fs.Int64Var(&maxElements, "max-elements", 0, "")
	fs.StringVar(&logLevel, "log-level", "warn", "")
	fs.IntVar(&jobs, "jobs", runtime.NumCPU(), "")
	fs.BoolVar(&verbose, "verbose", false, "")
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		return cli.RunResultHelp
	}

	paths := fs.Args()
	if len(paths) == 0 {
		c.Ui.Error("dups: at least one model file is required")
		return cli.RunResultHelp
	}
	if maxElements < 0 {
		c.Ui.Error("dups: -max-elements must not be negative")
		return 1
	}
	level := hclog.LevelFromString(logLevel)
	if level == hclog.NoLevel {
		c.Ui.Error(fmt.Sprintf("dups: unknown log level %q", logLevel))
		return 1
	}

	opts := canon.DefaultOptions()
	opts.MaxTensorElements = maxElements
	opts.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "borncse",
		Level:  level,
		Output: c.logOutput(),
	})

	reports := make([]string, len(paths))
	fileCfg := parallel.Config{Enabled: jobs > 1, NumWorkers: jobs, MinChunkSize: 1}
	err := parallel.ForErr(len(paths), func(i int) error {
		out, err := analyzeFile(paths[i], opts, verbose)
		if err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
		reports[i] = out
		return nil
	}, fileCfg)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}

	for _, out := range reports {
		c.Ui.Output(out)
	}
	return 0
}

func (c *DupsCommand) logOutput() io.Writer {
	if c.LogOutput != nil {
		return c.LogOutput
	}
	return os.Stderr
}

// analyzeFile loads one model and renders its duplicate report. Per-node hashing
// failures are logged and do not fail the file.
func analyzeFile(path string, opts canon.Options, verbose bool) (string, error) {
	logger := opts.Logger.With("model", path)
	g, err := onnx.Load(path, onnx.LoadOptions{Logger: logger})
	if err != nil {
		return "", err
	}

	opts.Logger = logger
	idx := canon.New(opts)

	report, err := idx.Scan(g)
	if err != nil {
		logger.Warn("some nodes were not compared", "error", err)
	}
	groups, err := idx.DedupInitializers(g)
	if err != nil {
		logger.Warn("some initializers were not compared", "error", err)
	}

	return formatReport(path, g, report, groups, verbose), nil
}

func formatReport(path string, g *ir.Graph, r *canon.Report, groups []canon.TensorGroup, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d nodes, %d duplicate nodes, %d skipped, %d duplicate initializer groups\n",
		path, len(g.Nodes), len(r.Duplicates), len(r.Skipped), len(groups))

	for _, d := range r.Duplicates {
		fmt.Fprintf(&b, "  node %s %s duplicates %s", g.KindName(d.Node), nodeLabel(d.Node), nodeLabel(d.Canonical))
		if d.KeepsGraphOutput {
			b.WriteString(" [graph output]")
		}
		b.WriteByte('\n')
	}
	for _, grp := range groups {
		names := make([]string, len(grp.Duplicates))
		for i, t := range grp.Duplicates {
			names[i] = t.Name
		}
		fmt.Fprintf(&b, "  initializer %s duplicated by %s\n", grp.Canonical.Name, strings.Join(names, ", "))
	}
	if verbose {
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "  skipped %s %s: %s\n", g.KindName(s.Node), nodeLabel(s.Node), s.Reason)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// nodeLabel names a node by its name, or by its first output when unnamed.
func nodeLabel(n *ir.Node) string {
	if n.Name != "" {
		return fmt.Sprintf("%q", n.Name)
	}
	for _, out := range n.Outputs {
		if out.UniqueName != "" {
			return fmt.Sprintf("(-> %s)", out.UniqueName)
		}
	}
	return "(unnamed)"
}
