package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	statemachine "github.com/inventhouse/statemachine"
	"github.com/inventhouse/statemachine/internal/presentation/tui"
	"github.com/inventhouse/statemachine/pkg/domain"
	"github.com/inventhouse/statemachine/pkg/observability"
)

// RunOptions carries the assembled settings for the run command: flags
// overlaid on the project config by Config.Merge.
type RunOptions struct {
	Start     string
	Named     []string
	Add       []string
	RuleFiles []string

	TraceDepth *int

	Verbose           bool
	IgnoreUnmatched   bool
	UnrecognizedFatal bool

	Logger *slog.Logger
}

// LoadSource reads every rule file and packages the rule text with the
// authoritative flag rules.
func LoadSource(opts RunOptions) (statemachine.Source, error) {
	src := statemachine.Source{Named: opts.Named, Add: opts.Add}
	for _, path := range opts.RuleFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return statemachine.Source{}, fmt.Errorf("failed to read rule file: %w", err)
		}
		src.Files = append(src.Files, string(data))
	}
	return src, nil
}

// Assemble compiles a machine from the options. The verbose tracer, when
// enabled, writes every evaluation attempt to traceOut.
func Assemble(opts RunOptions, traceOut io.Writer) (*statemachine.Machine, *statemachine.Report, error) {
	if opts.Start == "" {
		return nil, nil, errors.New("no start state: use --start or the config file")
	}

	src, err := LoadSource(opts)
	if err != nil {
		return nil, nil, err
	}

	var mopts []statemachine.Option
	if opts.TraceDepth != nil {
		mopts = append(mopts, statemachine.WithTraceDepth(*opts.TraceDepth))
	}
	if opts.Verbose {
		tracer := observability.NewPrefixTracer(traceOut, "")
		tracer.Decorate = tui.NewStyler().TraceLine
		mopts = append(mopts, statemachine.WithTracer(tracer))
	}
	if opts.IgnoreUnmatched {
		mopts = append(mopts, statemachine.WithIgnoreUnrecognized())
	}
	if opts.Logger != nil {
		mopts = append(mopts, statemachine.WithLogger(opts.Logger))
	}

	return statemachine.Compile(opts.Start, src, nil, mopts...)
}

// Run assembles a machine and feeds it lines from in, one input per line,
// writing each produced output to out. Unrecognized input prints the
// machine's traceback to errW and, unless UnrecognizedFatal is set,
// processing continues with the next line.
func Run(opts RunOptions, in io.Reader, out, errW io.Writer) error {
	style := tui.NewStyler()

	m, report, err := Assemble(opts, errW)
	if err != nil {
		return err
	}
	for _, name := range report.Unresolved {
		fmt.Fprintf(errW, "%s possible unresolved alias %q\n", style.Error("warning:"), name)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		output, ok, err := m.Input(scanner.Text())
		if err != nil {
			if errors.Is(err, domain.ErrUnrecognized) {
				fmt.Fprintln(errW, style.Error(err.Error()))
				if opts.UnrecognizedFatal {
					return err
				}
				continue
			}
			return err
		}
		if ok {
			fmt.Fprintln(out, output)
		}
	}
	return scanner.Err()
}
