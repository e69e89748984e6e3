package parser

import (
	"fmt"

	"github.com/bluescript-lang/runtime/wat/internal/token"
)

// sexpr is a generic parenthesized-list-or-atom node: the intermediate
// form between the raw token stream and the typed ast.Module. A module
// needs two passes (collect declared names across the whole file, then
// resolve references against them) because a call can name a function
// declared later in the file, so the parser reads the whole form tree
// generically before interpreting any of it.
type sexpr struct {
	kind token.Type // token.LParen for a list; the atom's own type otherwise
	text string     // atom text; unused for lists
	list []*sexpr   // children; unused for atoms
}

func (s *sexpr) isList() bool { return s.kind == token.LParen }

type reader struct {
	toks []token.Token
	pos  int
}

func (r *reader) peek() (token.Token, bool) {
	if r.pos >= len(r.toks) {
		return token.Token{}, false
	}
	return r.toks[r.pos], true
}

func (r *reader) next() (token.Token, bool) {
	t, ok := r.peek()
	if ok {
		r.pos++
	}
	return t, ok
}

// readForm reads one complete atom or parenthesized list starting at
// the reader's current position.
func (r *reader) readForm() (*sexpr, error) {
	t, ok := r.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if t.Type == token.RParen {
		return nil, fmt.Errorf("line %d: unexpected ')'", t.Line)
	}
	if t.Type != token.LParen {
		return &sexpr{kind: t.Type, text: t.Value}, nil
	}
	s := &sexpr{kind: token.LParen}
	for {
		nt, ok := r.peek()
		if !ok {
			return nil, fmt.Errorf("line %d: unterminated '('", t.Line)
		}
		if nt.Type == token.RParen {
			r.pos++
			return s, nil
		}
		child, err := r.readForm()
		if err != nil {
			return nil, err
		}
		s.list = append(s.list, child)
	}
}
