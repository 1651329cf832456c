// Package fileinput chains input sources into one byte stream. File
// sources are closed as soon as they are exhausted, so a session fed
// several scripts does not sit on every open file until it ends.
package fileinput

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Input reads queued sources in order, presenting them as one
// continuous stream through both io.Reader and io.ByteReader.
type Input struct {
	cur   *bufio.Reader
	src   io.Reader
	queue []io.Reader
}

// New builds an Input over the given sources.
func New(sources ...io.Reader) *Input { return &Input{queue: sources} }

// Open opens each named file, queueing them in argument order. Any
// already opened files are closed again if a later open fails.
func Open(names ...string) (*Input, error) {
	var in Input
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			in.Close()
			return nil, errors.Wrapf(err, "open %v failed", name)
		}
		in.queue = append(in.queue, f)
	}
	return &in, nil
}

// Add appends sources after any already queued.
func (in *Input) Add(sources ...io.Reader) { in.queue = append(in.queue, sources...) }

// ReadByte reads from the current source, rolling over to the next
// queued one when it runs out. Exhausted sources that implement
// io.Closer are closed at rollover. Returns io.EOF only once every
// source is spent.
func (in *Input) ReadByte() (byte, error) {
	for {
		if in.cur == nil && !in.next() {
			return 0, io.EOF
		}
		b, err := in.cur.ReadByte()
		if err == nil {
			return b, nil
		} else if err != io.EOF {
			return 0, err
		}
		in.closeCurrent()
	}
}

// Read is ReadByte's bulk counterpart, with the same rollover behavior.
func (in *Input) Read(p []byte) (int, error) {
	for {
		if in.cur == nil && !in.next() {
			return 0, io.EOF
		}
		n, err := in.cur.Read(p)
		if err == io.EOF {
			in.closeCurrent()
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (in *Input) next() bool {
	if len(in.queue) == 0 {
		return false
	}
	in.src = in.queue[0]
	in.queue = in.queue[1:]
	in.cur = bufio.NewReader(in.src)
	return true
}

func (in *Input) closeCurrent() {
	if cl, ok := in.src.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.src = nil, nil
}

// Close closes the current source and any still queued, keeping the
// first error.
func (in *Input) Close() error {
	var err error
	for _, src := range append([]io.Reader{in.src}, in.queue...) {
		if cl, ok := src.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.cur, in.src, in.queue = nil, nil, nil
	return err
}
