package main

import (
	"bytes"
	"io"
)

// Limits fixes the interpreter's storage sizes.  Everything is allocated by
// init and nothing grows afterward; running out of any of these is a user
// visible error, not a reallocation.
type Limits struct {
	Stack int
	Dict  int
	Arena int
	Line  int
	Word  int
}

var defaultLimits = Limits{
	Stack: 64,
	Dict:  32,
	Arena: 1024,
	Line:  1024,
	Word:  64,
}

// withDefaults fills unset or senseless fields.  Line needs room for at
// least one byte plus the reserved terminator slot.
func (l Limits) withDefaults() Limits {
	if l.Stack < 1 {
		l.Stack = defaultLimits.Stack
	}
	if l.Dict < 1 {
		l.Dict = defaultLimits.Dict
	}
	if l.Arena < 1 {
		l.Arena = defaultLimits.Arena
	}
	if l.Line < 2 {
		l.Line = defaultLimits.Line
	}
	if l.Word < 1 {
		l.Word = defaultLimits.Word
	}
	return l
}

// VM is a single interpreter session: a value stack, a word dictionary, and
// a line buffer, all sized once by Limits, driven by the REPL in repl.go.
type VM struct {
	ioCore

	stack stack
	dict  dict
	scan  scanner
	line  []byte

	compiling bool
	defStart  int

	limits Limits
	banner bool

	promptOK        string
	promptCompiling string

	edit *lineEditor
}

// init (re)establishes the sized storage and the builtin dictionary; safe to
// call again on a used VM, where it grows capacity but keeps content.
func (vm *VM) init() {
	vm.limits = vm.limits.withDefaults()
	if cap(vm.stack.cells) < vm.limits.Stack {
		cells := make([]int32, len(vm.stack.cells), vm.limits.Stack)
		copy(cells, vm.stack.cells)
		vm.stack.cells = cells
	}
	if cap(vm.dict.entries) < vm.limits.Dict {
		entries := make([]dictEntry, len(vm.dict.entries), vm.limits.Dict)
		copy(entries, vm.dict.entries)
		vm.dict.entries = entries
	}
	if cap(vm.dict.arena) < vm.limits.Arena {
		arena := make([]byte, len(vm.dict.arena), vm.limits.Arena)
		copy(arena, vm.dict.arena)
		vm.dict.arena = arena
	}
	if len(vm.line) < vm.limits.Line {
		vm.line = make([]byte, vm.limits.Line)
	}
	if vm.in == nil {
		vm.in = newByteReader(bytes.NewReader(nil))
	}
	if vm.out == nil {
		vm.out = newWriteFlusher(io.Discard)
	}
	if len(vm.dict.entries) == 0 {
		vm.registerBuiltins()
	}
}

func (vm *VM) registerBuiltins() {
	for _, def := range builtinDefs {
		vm.dict.defineBuiltin(def.name, def.op)
	}
}

func (vm *VM) push(v int32) error { return vm.stack.push(v) }

func (vm *VM) pop2() (b, a int32, err error) {
	if b, err = vm.stack.pop(); err != nil {
		return
	}
	a, err = vm.stack.pop()
	return
}

func (vm *VM) pop3() (c, b, a int32, err error) {
	if c, err = vm.stack.pop(); err != nil {
		return
	}
	if b, err = vm.stack.pop(); err != nil {
		return
	}
	a, err = vm.stack.pop()
	return
}

func (vm *VM) pushAll(vals ...int32) error {
	for _, v := range vals {
		if err := vm.stack.push(v); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) binop(f func(a, b int32) int32) error {
	b, a, err := vm.pop2()
	if err != nil {
		return err
	}
	return vm.push(f(a, b))
}
