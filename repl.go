package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

const bannerText = "afd: Alien Forth Dialect v0.4\n" +
	"Type 'bye' to exit, '.s' to show stack, 'words' to list words\n" +
	"Available: + - * / mod dup drop swap over rot . .s cr bye\n" +
	"           = < > words : ;\n\n"

// run is the session loop: prompt, read, evaluate, settle, repeat until the
// input ends or a non-recoverable error surfaces.
func (vm *VM) run(ctx context.Context) (rerr error) {
	vm.init()
	defer func() {
		if ferr := vm.out.Flush(); rerr == nil {
			rerr = ferr
		}
	}()
	if vm.banner {
		if err := vm.print(bannerText); err != nil {
			return err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.prompt(); err != nil {
			return err
		}
		n, err := vm.readLine()
		if err != nil {
			return err
		}
		vm.logf("<", "read %q", vm.line[:n])
		if err := vm.endLine(vm.evalLine(vm.line[:n])); err != nil {
			return err
		}
	}
}

// prompt shows the mode prompt and flushes so it lands before the read
// blocks.  Under a line editor the editor owns prompt display.
func (vm *VM) prompt() error {
	p := vm.promptOK
	if vm.compiling {
		p = vm.promptCompiling
	}
	if vm.edit != nil {
		vm.edit.setPrompt(p)
		return vm.out.Flush()
	}
	if err := vm.print(p); err != nil {
		return err
	}
	return vm.out.Flush()
}

// readLine fills vm.line up to one byte short of its size; longer input
// carries over into the next line rather than being dropped.  CR and LF
// both terminate a line.  EOF discards any partial line.
func (vm *VM) readLine() (int, error) {
	if vm.edit != nil {
		return vm.edit.readLine(vm.line)
	}
	n := 0
	for n < vm.limits.Line-1 {
		b, err := vm.in.ReadByte()
		if err == io.EOF {
			return 0, io.EOF
		} else if err != nil {
			return 0, errors.Wrap(err, "input read failed")
		}
		if b == '\n' || b == '\r' {
			return n, nil
		}
		vm.line[n] = b
		n++
	}
	return n, nil
}

// endLine settles one evaluated line.  Recoverable errors are reported and
// consumed, aborting any definition in progress; anything else ends the
// session.
func (vm *VM) endLine(err error) error {
	if err == nil {
		if !vm.compiling {
			return vm.print("ok\n")
		}
		return nil
	}
	var ierr interpError
	if errors.As(err, &ierr) {
		if err := vm.printf("Error: %s\n", ierr); err != nil {
			return err
		}
		if vm.compiling {
			if err := vm.print("Compilation aborted\n"); err != nil {
				return err
			}
			vm.compiling = false
			vm.dict.rollback(vm.defStart)
		}
		return nil
	}
	return err
}
