package converter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rskelly/canvec/pkg/canvec"
)

// Runner executes an external command and returns its stdout.
// Abstracted so tests can observe invocations without a real shp2pgsql.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands through os/exec, capturing stdout as the result
// and folding stderr into the error on failure.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return stdout.Bytes(), fmt.Errorf("%v: %s", err, detail)
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// Invoker builds shp2pgsql command lines from the run configuration and
// executes them. NOT safe for concurrent Convert calls with interleaved
// create/append modes; the pipeline runs it sequentially.
type Invoker struct {
	config   canvec.Config
	runner   Runner
	lookPath func(string) (string, error)
	logger   canvec.Logger
}

// NewInvoker creates an Invoker that runs the real converter executable.
// Panics if logger is nil.
func NewInvoker(config canvec.Config, logger canvec.Logger) *Invoker {
	return NewInvokerWithRunner(config, logger, execRunner{}, exec.LookPath)
}

// NewInvokerWithRunner creates an Invoker with an injected runner and
// lookup function. This is primarily useful for testing.
// Panics if logger, runner or lookPath is nil.
func NewInvokerWithRunner(config canvec.Config, logger canvec.Logger, runner Runner, lookPath func(string) (string, error)) *Invoker {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	if lookPath == nil {
		panic("lookPath cannot be nil")
	}
	return &Invoker{
		config:   config,
		runner:   runner,
		lookPath: lookPath,
		logger:   logger,
	}
}

// CheckAvailable verifies the converter executable can be found.
// The pipeline calls this before touching the output file, so a missing
// tool aborts with nothing written. The error wraps
// canvec.ErrConverterNotFound and names the missing executable.
func (i *Invoker) CheckAvailable() error {
	if _, err := i.lookPath(i.config.Converter); err != nil {
		return fmt.Errorf("%w: %q is not on the search path (install PostGIS or point --converter at it)",
			canvec.ErrConverterNotFound, i.config.Converter)
	}
	return nil
}

// Convert runs the converter against one extracted shapefile and returns
// the SQL it wrote to stdout. A non-zero exit wraps
// canvec.ErrConverterFailed; no timeout is imposed, only ctx cancellation
// stops a hung tool.
func (i *Invoker) Convert(ctx context.Context, shpPath string, mode canvec.ConvertMode) ([]byte, error) {
	args := i.argsFor(shpPath, mode)
	i.logger.Verbose("running %s %s", i.config.Converter, strings.Join(args, " "))

	out, err := i.runner.Run(ctx, i.config.Converter, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s (%s mode): %v",
			canvec.ErrConverterFailed, i.config.Converter, shpPath, mode, err)
	}
	return out, nil
}

// argsFor builds the converter argument list for one shapefile.
//
// Create mode: -s <srid> [-W <enc>] -d [-I] <shp> <schema>.<table>
// Append mode: -s <srid> [-W <enc>] -a <shp> <schema>.<table>
func (i *Invoker) argsFor(shpPath string, mode canvec.ConvertMode) []string {
	args := []string{"-s", strconv.Itoa(i.config.SRID)}
	if i.config.Encoding != "" {
		args = append(args, "-W", i.config.Encoding)
	}
	if mode == canvec.ModeCreate {
		args = append(args, "-d")
		if i.config.CreateIndex {
			args = append(args, "-I")
		}
	} else {
		args = append(args, "-a")
	}
	return append(args, shpPath, i.config.QualifiedTable())
}

// Verify Invoker implements the interface at compile time
var _ canvec.ConverterInvoker = (*Invoker)(nil)
