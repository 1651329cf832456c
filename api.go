package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/afd/internal/panicerr"
)

func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run drives the interpreter session until its input runs out, a bye word
// executes, or something fails.  Both exhausted input and bye count as a
// clean end.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("interp", func() error {
		return vm.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, errBye) {
		return nil
	}
	return err
}

func WithInput(r io.Reader) VMOption            { return withInput(r) }
func WithOutput(w io.Writer) VMOption           { return withOutput(w) }
func WithTee(w io.Writer) VMOption              { return withTee(w) }
func WithLimits(limits Limits) VMOption         { return withLimits(limits) }
func WithBanner(on bool) VMOption               { return withBanner(on) }
func WithPrompts(ok, compiling string) VMOption { return withPrompts(ok, compiling) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
