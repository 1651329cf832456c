package main

// scanner cursors over one line buffer, yielding space- or tab-separated
// byte spans.  A NUL byte ends the line early.
type scanner struct {
	line []byte
	pos  int
}

func (sc *scanner) reset(line []byte) {
	sc.line = line
	sc.pos = 0
}

func (sc *scanner) next() ([]byte, bool) {
	for sc.pos < len(sc.line) {
		switch sc.line[sc.pos] {
		case ' ', '\t':
			sc.pos++
		case 0:
			sc.pos = len(sc.line)
		default:
			start := sc.pos
			for sc.pos < len(sc.line) {
				if b := sc.line[sc.pos]; b == ' ' || b == '\t' || b == 0 {
					break
				}
				sc.pos++
			}
			return sc.line[start:sc.pos], true
		}
	}
	return nil, false
}

// parseNumber recognizes an optional leading minus then one or more decimal
// digits.  A bare minus is a word, not a number.  Accumulation wraps at 32
// bits rather than erroring.
func parseNumber(tok []byte) (int32, bool) {
	if len(tok) == 0 {
		return 0, false
	}
	i, neg := 0, false
	if tok[0] == '-' {
		if len(tok) == 1 {
			return 0, false
		}
		i, neg = 1, true
	}
	var n int32
	for ; i < len(tok); i++ {
		b := tok[i]
		if b < '0' || b > '9' {
			return 0, false
		}
		n = n*10 + int32(b-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
