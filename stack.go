package main

// stack is the value stack: a LIFO of 32-bit cells whose capacity is fixed
// at session start.  push fails rather than grow.
type stack struct {
	cells []int32
}

func (st *stack) push(v int32) error {
	if len(st.cells) == cap(st.cells) {
		return errStackOverflow
	}
	st.cells = append(st.cells, v)
	return nil
}

func (st *stack) pop() (int32, error) {
	i := len(st.cells) - 1
	if i < 0 {
		return 0, errStackUnderflow
	}
	v := st.cells[i]
	st.cells = st.cells[:i]
	return v, nil
}

func (st *stack) peek() (int32, error) {
	if len(st.cells) == 0 {
		return 0, errStackEmpty
	}
	return st.cells[len(st.cells)-1], nil
}

func (st *stack) depth() int { return len(st.cells) }
