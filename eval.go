package main

// evalLine runs every token on the line in order, stopping at the first
// error.  The REPL decides what an error means; by the time one surfaces
// here the earlier tokens' effects have already happened.
func (vm *VM) evalLine(line []byte) error {
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	vm.scan.reset(line)
	for {
		tok, ok := vm.scan.next()
		if !ok {
			return nil
		}
		if len(tok) >= vm.limits.Word {
			return errWordTooLong
		}
		if err := vm.evalToken(tok); err != nil {
			return err
		}
	}
}

// evalToken resolves one token: number first, then dictionary, then either a
// definition name or an unknown word depending on mode.  Numbers and known
// words take effect even while compiling.
func (vm *VM) evalToken(tok []byte) error {
	if n, ok := parseNumber(tok); ok {
		vm.logf(">", "push %v", n)
		return vm.push(n)
	}

	if i, ok := vm.dict.lookup(tok); ok {
		e := &vm.dict.entries[i]
		if e.kind == entryBuiltin {
			return vm.dispatch(e.op)
		}
		// User words record an arena span at definition time, but nothing
		// compiles tokens into the span yet, so invoking one is inert.
		// TODO compile definition bodies and replay them here.
		vm.logf(">", "call %v (inert)", e.name)
		return nil
	}

	if vm.compiling {
		vm.logf(">", "define %q", tok)
		return vm.dict.defineUser(tok, vm.defStart)
	}

	if err := vm.printf("Unknown word: %s\n", tok); err != nil {
		return err
	}
	return errUnknownWord
}
