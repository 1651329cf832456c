package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/jcorbin/afd/internal/fileinput"
	"github.com/jcorbin/afd/internal/panicerr"
	"github.com/jcorbin/afd/internal/rcfile"
)

func main() {
	if err := run(context.Background()); err != nil {
		if panicerr.IsPanic(err) {
			fmt.Printf("\nPanic occurred!\n")
		}
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) (rerr error) {
	var (
		timeout  time.Duration
		trace    bool
		rcPath   string
		noRC     bool
		rawIO    bool
		editing  bool
		interact bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.StringVar(&rcPath, "rc", "", "load this config file rather than searching for "+rcfile.Name)
	flag.BoolVar(&noRC, "norc", false, "skip config loading")
	flag.BoolVar(&rawIO, "raw", false, "switch the terminal to raw byte IO")
	flag.BoolVar(&editing, "readline", false, "read lines through an interactive editor")
	flag.BoolVar(&interact, "i", false, "keep reading stdin after script files")
	flag.Parse()

	cfg, err := loadConfig(rcPath, noRC)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(flag.Args(), interact)
	if err != nil {
		return err
	}
	if closeIn != nil {
		defer func() {
			if cerr := closeIn.Close(); rerr == nil {
				rerr = cerr
			}
		}()
	}

	opts := []VMOption{
		WithInput(in),
		WithOutput(os.Stdout),
		WithLimits(Limits{
			Stack: cfg.Limits.Stack,
			Dict:  cfg.Limits.Dictionary,
			Arena: cfg.Limits.Arena,
			Line:  cfg.Limits.Line,
			Word:  cfg.Limits.Word,
		}),
		WithPrompts(cfg.PromptOK, cfg.PromptCompiling),
		WithBanner(cfg.Banner),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	// the editor reads the terminal itself, so it only makes sense when no
	// script files claim the input
	if editing && len(flag.Args()) == 0 {
		ed, err := WithReadline(cfg.PromptOK)
		if err != nil {
			return err
		}
		opts = append(opts, ed)
	}

	if rawIO {
		restore, err := setRawIO()
		if err != nil {
			return err
		}
		defer restore()
	}

	vm := New(opts...)
	defer func() {
		if cerr := vm.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return vm.Run(ctx)
}

func loadConfig(rcPath string, noRC bool) (*rcfile.Config, error) {
	if noRC {
		return rcfile.Default(), nil
	}
	if rcPath != "" {
		return rcfile.Load(rcPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine working directory")
	}
	cfg, err := rcfile.Find(wd)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return rcfile.Default(), nil
	}
	return cfg, nil
}

// openInput builds the session input: script files in argument order, then
// stdin when asked for, or stdin alone when no files are named.
func openInput(args []string, interact bool) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	in, err := fileinput.Open(args...)
	if err != nil {
		return nil, nil, err
	}
	if interact {
		in.Add(os.Stdin)
	}
	return in, in, nil
}
