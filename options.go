package main

import (
	"bytes"
	"io"
)

type VMOption interface{ apply(vm *VM) }

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// VMOptions combines options into one; nil options are skipped.
func VMOptions(opts ...VMOption) VMOption { return vmOptions(opts) }

var defaultOptions = VMOptions(
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
	withLimits(defaultLimits),
	withPrompts("ok> ", ": "),
	withBanner(true),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type limitsOption Limits

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withLimits(limits Limits) limitsOption { return limitsOption(limits) }

func (i inputOption) apply(vm *VM) {
	vm.in = newByteReader(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = newWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = multiWriteFlusher(vm.out, newWriteFlusher(o.Writer))
}

func (l limitsOption) apply(vm *VM) {
	vm.limits = Limits(l)
}

type promptsOption struct{ ok, compiling string }

func withPrompts(ok, compiling string) promptsOption { return promptsOption{ok, compiling} }

func (p promptsOption) apply(vm *VM) {
	vm.promptOK = p.ok
	vm.promptCompiling = p.compiling
}

type bannerOption bool

func withBanner(on bool) bannerOption { return bannerOption(on) }

func (b bannerOption) apply(vm *VM) {
	vm.banner = bool(b)
}
