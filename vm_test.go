package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	ops     []func(vm *VM) error
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withLimits(limits Limits) vmTestCase {
	vmt.opts = append(vmt.opts, WithLimits(limits))
	return vmt
}

// withStack seeds stack values; it must come after any withLimits so that
// the cells have their final capacity.
func (vmt vmTestCase) withStack(values ...int32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.init()
		for _, v := range values {
			if err := vm.push(v); err != nil {
				panic(err)
			}
		}
	}))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithInput(strings.NewReader(input))
	})
	return vmt
}

func (vmt vmTestCase) withPrompts() vmTestCase {
	vmt.opts = append(vmt.opts, WithPrompts("ok> ", ": "))
	return vmt
}

func (vmt vmTestCase) withBanner() vmTestCase {
	vmt.opts = append(vmt.opts, WithBanner(true))
	return vmt
}

func (vmt vmTestCase) do(ops ...func(vm *VM) error) vmTestCase {
	vmt.ops = append(vmt.ops, ops...)
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int32{}
		}
		assert.Equal(t, values, vm.stack.cells, "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectCompiling(compiling bool) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, compiling, vm.compiling, "expected compile mode")
	})
	return vmt
}

func (vmt vmTestCase) expectWordDefined(name string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		i, ok := vm.dict.lookup([]byte(name))
		if assert.True(t, ok, "expected %q in dictionary", name) {
			assert.Equal(t, entryUser, vm.dict.entries[i].kind, "expected %q to be a user word", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	out := &strings.Builder{}
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		out.Reset()
		return WithOutput(out)
	})
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		lw := &logWriter{prefix: "out: ", logf: t.Logf}
		return VMOptions(WithTee(lw), optFunc(func(vm *VM) {
			vm.closers = append(vm.closers, lw)
		}))
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Now().Sub(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		vmt.runVMTest(context.Background(), t, vmt.buildVM(t))
	}) {
		vm := vmt.buildVM(t)
		WithLogf(t.Logf).apply(vm)
		vmt.runVMTest(context.Background(), t, vm)
	}
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	if err := vmt.runVM(ctx, vm); vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()

	if len(vmt.ops) == 0 {
		return vm.Run(ctx)
	}

	names := make([]string, len(vmt.ops))
	for i, op := range vmt.ops {
		names[i] = runtime.FuncForPC(reflect.ValueOf(op).Pointer()).Name()
	}
	vm.init()
	for i, op := range vmt.ops {
		vm.logf(">", "do[%v] %v", i, names[i])
		if err := op(vm); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	var vm VM

	var opt VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	VMOptions(opt).apply(&vm)

	if vm.in == nil {
		vm.in = newByteReader(strings.NewReader(""))
	}
	if vm.out == nil {
		vm.out = newWriteFlusher(io.Discard)
	}

	return &vm
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	t.Logf("stack: %v", vm.stack.cells)
	t.Logf("compiling: %v defStart: %v arenaTop: %v", vm.compiling, vm.defStart, len(vm.dict.arena))
	for i, e := range vm.dict.entries {
		if e.kind == entryBuiltin {
			t.Logf("dict[%v]: %q builtin %v", i, e.name, opNames[e.op])
		} else {
			t.Logf("dict[%v]: %q user @%v+%v", i, e.name, e.start, e.length)
		}
	}
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

type logWriter struct {
	prefix string
	logf   func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *logWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.flushLines()
	return len(p), nil
}

func (lw *logWriter) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.flushLines()
	if n := lw.buf.Len(); n > 0 {
		lw.logf("%s%s", lw.prefix, lw.buf.Next(n))
	}
	return nil
}

func (lw *logWriter) flushLines() {
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.logf("%s%s", lw.prefix, lw.buf.Next(i))
		lw.buf.Next(1)
	}
}
