package shunt

import (
	"github.com/puzpuzpuz/xsync"
)

// overload is one (leftMask, rightMask, fn) entry in an operator's
// candidate list, tried in registration order.
type overload struct {
	left  Kind
	right Kind
	mask  uint64
	fn    OverloadFunc
}

// OverloadFunc implements one operator candidate. It returns
// Reject() to decline the match without failing the whole dispatch,
// letting the next registered candidate try.
type OverloadFunc func(left, right Value, ev *Evaluator) (Value, error)

// anyOp is the catch-all operator key consulted when no entry exists
// for the literal operator string, per §4.3 step 1.
const anyOp = ""

// Registry holds the two immutable-after-configuration tables spec
// §4.3/§4.4 describe: operator precedence/associativity and the
// type-pair-keyed overload table, plus the reserved-word/character
// parser hooks of §4.4. A Registry may be read (compiled/evaluated)
// concurrently from many goroutines while a single goroutine
// registers more entries, guarded by a reader-biased mutex — the same
// primitive and locking discipline the teacher uses to protect its
// read-heavy, write-rare interned-name map.
type Registry struct {
	xsync.RBMutex

	precedence map[string]int
	rightAssoc map[string]bool
	overloads  map[string][]overload

	reservedWords map[string]ReservedWordHook
	reservedChars map[byte]ReservedCharHook
}

// NewRegistry returns a Registry seeded with the built-in operator
// surface of spec §4.7: arithmetic, comparison, logical, string,
// list, map, call, assignment and tuple-building overloads, plus
// their precedence/associativity.
func NewRegistry() *Registry {
	r := &Registry{
		precedence:    make(map[string]int),
		rightAssoc:    make(map[string]bool),
		overloads:     make(map[string][]overload),
		reservedWords: make(map[string]ReservedWordHook),
		reservedChars: make(map[byte]ReservedCharHook),
	}
	r.precedence["["] = maxPrecedence
	r.precedence["("] = maxPrecedence
	r.precedence["{"] = maxPrecedence
	r.precedence["[]"] = sentinelPrecedence
	r.precedence["()"] = sentinelPrecedence
	r.precedence["[lit]"] = sentinelPrecedence
	r.precedence["{lit}"] = sentinelPrecedence
	r.registerOperatorLocked("=", -1)
	seedBuiltins(r)
	return r
}

const (
	maxPrecedence      = 1<<31 - 1
	sentinelPrecedence = -1
)

// RegisterOperator sets op's precedence. A negative precedence marks
// op right-associative, storing its absolute value (mirroring
// OppMap_t::add in the reference implementation).
func (r *Registry) RegisterOperator(op string, precedence int) {
	r.Lock()
	defer r.Unlock()
	r.registerOperatorLocked(op, precedence)
}

func (r *Registry) registerOperatorLocked(op string, precedence int) {
	if precedence < 0 {
		r.rightAssoc[op] = true
		precedence = -precedence
	}
	r.precedence[op] = precedence
}

// RegisterUnary registers op as a left-unary prefix operator ("L"+op)
// at precedence p. If op has no binary entry yet, one is added at the
// same precedence so "does this operator exist" stays a single
// lookup.
func (r *Registry) RegisterUnary(op string, p int) {
	r.Lock()
	defer r.Unlock()
	r.registerOperatorLocked("L"+op, p)
	if _, ok := r.precedence[op]; !ok {
		r.registerOperatorLocked(op, p)
	}
}

// RegisterRightUnary registers op as a right-unary postfix operator
// ("R"+op) at precedence p, with the same existence-seeding rule as
// RegisterUnary.
func (r *Registry) RegisterRightUnary(op string, p int) {
	r.Lock()
	defer r.Unlock()
	r.registerOperatorLocked("R"+op, p)
	if _, ok := r.precedence[op]; !ok {
		r.registerOperatorLocked(op, p)
	}
}

func (r *Registry) exists(op string) bool {
	tk := r.RLock()
	_, ok := r.precedence[op]
	r.RUnlock(tk)
	return ok
}

func (r *Registry) precOf(op string) (int, bool, bool) {
	tk := r.RLock()
	defer r.RUnlock(tk)
	p, ok := r.precedence[op]
	return p, r.rightAssoc[op], ok
}

// RegisterOverload adds fn as a candidate for (left, op, right),
// tried after every overload already registered for that exact
// triple — later registrations are tried later, so an earlier
// candidate's Reject() cascades to the next one in order.
func (r *Registry) RegisterOverload(left Kind, op string, right Kind, fn OverloadFunc) {
	r.Lock()
	defer r.Unlock()
	r.overloads[op] = append(r.overloads[op], overload{
		left: left, right: right, mask: buildMask(left, right), fn: fn,
	})
}

// dispatch resolves (op, leftKind, rightKind) to a value, trying the
// literal operator's candidates in order and falling back to the
// catch-all ("") list when the operator has none of its own. The
// first non-rejecting candidate wins; if every candidate rejects (or
// none match), dispatch fails with MissingOperator.
func (r *Registry) dispatch(op string, left, right Value, ev *Evaluator) (Value, error) {
	tk := r.RLock()
	list := r.overloads[op]
	if list == nil {
		list = r.overloads[anyOp]
	}
	candidates := make([]overload, len(list))
	copy(candidates, list)
	r.RUnlock(tk)

	key := buildMask(left.kind, right.kind)
	for _, c := range candidates {
		if c.mask&key != key {
			continue
		}
		v, err := c.fn(left, right, ev)
		if err == nil {
			return v, nil
		}
		if isReject(err) {
			continue
		}
		return None, err
	}
	return None, &EvalError{Kind: ErrMissingOperator, Op: op, Left: left.kind, Right: right.kind}
}

// ReservedWordHook is invoked when the parser is about to read an
// identifier that exactly matches a registered reserved word. It
// receives the input starting just past the word and a builder handle
// to emit tokens/operators through, and returns the position to
// resume default parsing from.
type ReservedWordHook func(input string, pos int, b *rpnBuilder) (next int, err error)

// ReservedCharHook is invoked at the top of each token read when the
// next byte matches a registered reserved character (used for
// comments, custom operators, custom string delimiters, ...).
type ReservedCharHook func(input string, pos int, b *rpnBuilder) (next int, err error)

func (r *Registry) RegisterReservedWord(word string, hook ReservedWordHook) {
	r.Lock()
	defer r.Unlock()
	r.reservedWords[word] = hook
}

func (r *Registry) RegisterReservedChar(c byte, hook ReservedCharHook) {
	r.Lock()
	defer r.Unlock()
	r.reservedChars[c] = hook
}

func (r *Registry) findReservedWord(word string) (ReservedWordHook, bool) {
	tk := r.RLock()
	defer r.RUnlock(tk)
	h, ok := r.reservedWords[word]
	return h, ok
}

func (r *Registry) findReservedChar(c byte) (ReservedCharHook, bool) {
	tk := r.RLock()
	defer r.RUnlock(tk)
	h, ok := r.reservedChars[c]
	return h, ok
}
