package main

import (
	"io"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// lineEditor fronts session input with chzyer/readline when the session is
// interactive, adding history and editing that the raw byte loop lacks.
type lineEditor struct {
	rl *readline.Instance
}

// WithReadline routes line input through an interactive line editor.
func WithReadline(prompt string) (VMOption, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot open line editor")
	}
	return editorOption{&lineEditor{rl}}, nil
}

type editorOption struct{ ed *lineEditor }

func (o editorOption) apply(vm *VM) {
	vm.edit = o.ed
	vm.closers = append(vm.closers, o.ed.rl)
}

func (ed *lineEditor) setPrompt(p string) { ed.rl.SetPrompt(p) }

// readLine maps editor outcomes onto the raw reader's contract: an
// interrupted line comes back empty, editor EOF is session EOF.  Overlong
// input is cut at the buffer rather than carried over; the editor already
// consumed the rest.
func (ed *lineEditor) readLine(buf []byte) (int, error) {
	line, err := ed.rl.Readline()
	switch err {
	case nil:
	case readline.ErrInterrupt:
		return 0, nil
	case io.EOF:
		return 0, io.EOF
	default:
		return 0, errors.Wrap(err, "line editor read failed")
	}
	n := copy(buf[:len(buf)-1], line)
	return n, nil
}
