/* Package main: afd -- an Alien Forth Dialect

afd is a tiny line interpreter for a stack language that looks a lot like
FORTH, but only a lot.  It reads lines, splits them on spaces and tabs, and
evaluates each token against a fixed 64-cell stack of 32-bit integers and a
fixed 32-entry word dictionary.  Everything is sized up front: the stack, the
dictionary, the definition arena, and the line buffer never grow after the
session starts.

A token is either a decimal literal (an optional minus sign then digits,
wrapping silently at 32 bits) or a word.  Words resolve through the dictionary
newest-first, so a later entry with the same name shadows an earlier one
without removing it.  The twenty builtin words are:

	+ - * / mod dup drop swap over rot . .s cr bye = < > words : ;

Division and modulo truncate toward zero, and both pop their operands before
checking for zero, so a division by zero costs you the operands as well as the
line.  Comparisons push -1 for true and 0 for false, as FORTH likes it.

The colon word enters compile mode and remembers where the definition arena
currently ends; semicolon leaves compile mode.  While compiling, tokens that
resolve still execute immediately (there is no immediate/postpone machinery),
and any token that does not resolve is defined as a word on the spot: the one
right after the colon is the name you meant, but unresolvable body tokens get
entries of their own too.  Definition bodies are recorded as a span of the
arena but nothing is compiled into them yet, so invoking a user word does
nothing at all.

Any error aborts the rest of the line: the interpreter prints an Error
diagnostic, abandons any definition in progress, and prompts again.  The
session ends on the bye word or on end of input.

The interpreter itself only asks for three things from the outside world: a
place to read bytes from, a place to write bytes to, and a way to stop.  Those
are injected through options, so the same engine runs against a terminal, a
script file, or an in-memory buffer in tests.

An afd.toml file, found in the current directory or any parent, can resize the
fixed buffers and restyle the prompts; see internal/rcfile.
*/
package main
