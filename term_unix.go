//go:build !windows

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// setRawIO switches the controlling terminal to raw byte IO so keystrokes
// reach the interpreter as they happen.  Canonical buffering and echo go
// away; ISIG stays, so ^C still signals.  The returned function restores
// the terminal.
func setRawIO() (func(), error) {
	fd := os.Stdin.Fd()
	var tios unix.Termios
	if err := termios.Tcgetattr(fd, &tios); err != nil {
		return nil, errors.Wrap(err, "Tcgetattr failed")
	}
	a := tios
	a.Iflag &^= unix.IGNBRK | unix.ISTRIP | unix.IXON | unix.IXOFF
	a.Iflag |= unix.BRKINT | unix.IGNPAR
	a.Lflag &^= unix.ICANON | unix.IEXTEN | unix.ECHO
	a.Cc[unix.VMIN] = 1
	a.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &a); err != nil {
		// try to restore as it was
		termios.Tcsetattr(fd, termios.TCSANOW, &tios)
		return nil, errors.Wrap(err, "Tcsetattr failed")
	}
	return func() {
		termios.Tcsetattr(fd, termios.TCSANOW, &tios)
	}, nil
}
