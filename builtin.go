package main

// Builtin operations are identified by a small id stored in dictionary
// entries; the zero id stays invalid so a blank entry can never dispatch.
type opCode uint8

const (
	opInvalid opCode = iota

	opAdd
	opSub
	opMul
	opDiv
	opMod
	opDup
	opDrop
	opSwap
	opOver
	opRot
	opDot
	opDotS
	opCR
	opBye
	opColon
	opSemi
	opEqual
	opLess
	opGreater
	opWords

	opMax
)

// builtinDefs registers in this exact order so that words lists them the way
// the banner advertises them.
var builtinDefs = [...]struct {
	name string
	op   opCode
}{
	{"+", opAdd},
	{"-", opSub},
	{"*", opMul},
	{"/", opDiv},
	{"mod", opMod},
	{"dup", opDup},
	{"drop", opDrop},
	{"swap", opSwap},
	{"over", opOver},
	{"rot", opRot},
	{".", opDot},
	{".s", opDotS},
	{"cr", opCR},
	{"bye", opBye},
	{":", opColon},
	{";", opSemi},
	{"=", opEqual},
	{"<", opLess},
	{">", opGreater},
	{"words", opWords},
}

var opTable [opMax]func(vm *VM) error
var opNames [opMax]string

func init() {
	opTable = [...]func(vm *VM) error{
		nil,

		(*VM).add,
		(*VM).sub,
		(*VM).mul,
		(*VM).div,
		(*VM).mod,
		(*VM).dup,
		(*VM).drop,
		(*VM).swap,
		(*VM).over,
		(*VM).rot,
		(*VM).dot,
		(*VM).dotS,
		(*VM).cr,
		(*VM).bye,
		(*VM).colon,
		(*VM).semi,
		(*VM).equal,
		(*VM).less,
		(*VM).greater,
		(*VM).words,
	}

	opNames = [...]string{
		"",

		"+",
		"-",
		"*",
		"/",
		"mod",
		"dup",
		"drop",
		"swap",
		"over",
		"rot",
		".",
		".s",
		"cr",
		"bye",
		":",
		";",
		"=",
		"<",
		">",
		"words",
	}
}

func (vm *VM) dispatch(op opCode) error {
	if op <= opInvalid || op >= opMax {
		return errUnknownBuiltin
	}
	vm.logf(">", "exec %v", opNames[op])
	return opTable[op](vm)
}

//// Arithmetic

// Binary operations pop b then a and push f(a, b).
func (vm *VM) add() error { return vm.binop(func(a, b int32) int32 { return a + b }) }
func (vm *VM) sub() error { return vm.binop(func(a, b int32) int32 { return a - b }) }
func (vm *VM) mul() error { return vm.binop(func(a, b int32) int32 { return a * b }) }

// div and mod pop both operands before the zero check, so a division by zero
// loses its operands as well as the line.
func (vm *VM) div() error {
	b, a, err := vm.pop2()
	if err != nil {
		return err
	}
	if b == 0 {
		return errDivisionByZero
	}
	return vm.push(a / b)
}

func (vm *VM) mod() error {
	b, a, err := vm.pop2()
	if err != nil {
		return err
	}
	if b == 0 {
		return errDivisionByZero
	}
	return vm.push(a % b)
}

//// Stack shuffling

func (vm *VM) dup() error {
	v, err := vm.stack.peek()
	if err != nil {
		return err
	}
	return vm.push(v)
}

func (vm *VM) drop() error {
	_, err := vm.stack.pop()
	return err
}

func (vm *VM) swap() error {
	b, a, err := vm.pop2()
	if err != nil {
		return err
	}
	return vm.pushAll(b, a)
}

func (vm *VM) over() error {
	b, a, err := vm.pop2()
	if err != nil {
		return err
	}
	return vm.pushAll(a, b, a)
}

func (vm *VM) rot() error {
	c, b, a, err := vm.pop3()
	if err != nil {
		return err
	}
	return vm.pushAll(b, c, a)
}

//// Comparison

// Comparisons push FORTH truth: all bits set for true, zero for false.
func (vm *VM) equal() error { return vm.binop(func(a, b int32) int32 { return forthBool(a == b) }) }
func (vm *VM) less() error  { return vm.binop(func(a, b int32) int32 { return forthBool(a < b) }) }
func (vm *VM) greater() error {
	return vm.binop(func(a, b int32) int32 { return forthBool(a > b) })
}

func forthBool(b bool) int32 {
	if b {
		return -1
	}
	return 0
}

//// Output

func (vm *VM) dot() error {
	v, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.printf("%d ", v)
}

func (vm *VM) dotS() error {
	if err := vm.printf("<%d> ", vm.stack.depth()); err != nil {
		return err
	}
	for _, v := range vm.stack.cells {
		if err := vm.printf("%d ", v); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) cr() error { return vm.print("\n") }

func (vm *VM) words() error {
	if err := vm.print("Words: "); err != nil {
		return err
	}
	for _, e := range vm.dict.entries {
		if err := vm.printf("%s ", e.name); err != nil {
			return err
		}
	}
	return vm.print("\n")
}

//// Session control

func (vm *VM) bye() error {
	if err := vm.print("Goodbye!\n"); err != nil {
		return err
	}
	return errBye
}

func (vm *VM) colon() error {
	if vm.compiling {
		return errAlreadyCompiling
	}
	vm.compiling = true
	vm.defStart = vm.dict.top()
	return nil
}

func (vm *VM) semi() error {
	if !vm.compiling {
		return errNotCompiling
	}
	vm.compiling = false
	return nil
}
