// Package compiler implements a single-pass Pratt parser: it walks the
// token stream once and emits bytecode directly, rather than building an
// intermediate AST the way the rule-table compiler this package is based
// on does for its AST variant. Each token kind maps to a prefix rule, an
// infix rule, and a binding precedence; parsePrecedence climbs that table
// to turn expression grammar into a small, direct recursive-ish loop.
package compiler

import (
	"strconv"

	"nilox/chunk"
	"nilox/lexer"
	"nilox/token"
	"nilox/value"
)

// Precedence levels, lowest to highest. A rule's own precedence is the
// precedence its infix form binds its right-hand operand looser than;
// parsePrecedence(p) parses everything whose leading operator binds at
// least as tightly as p.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LPAREN:        {groupingRule, nil, PrecNone},
		token.MINUS:         {unaryRule, binaryRule, PrecTerm},
		token.PLUS:          {nil, binaryRule, PrecTerm},
		token.SLASH:         {nil, binaryRule, PrecFactor},
		token.STAR:          {nil, binaryRule, PrecFactor},
		token.BANG:          {unaryRule, nil, PrecNone},
		token.BANG_EQUAL:    {nil, binaryRule, PrecEquality},
		token.EQUAL_EQUAL:   {nil, binaryRule, PrecEquality},
		token.GREATER:       {nil, binaryRule, PrecComparison},
		token.GREATER_EQUAL: {nil, binaryRule, PrecComparison},
		token.LESS:          {nil, binaryRule, PrecComparison},
		token.LESS_EQUAL:    {nil, binaryRule, PrecComparison},
		token.IDENTIFIER:    {variableRule, nil, PrecNone},
		token.STRING:        {stringRule, nil, PrecNone},
		token.NUMBER:        {numberRule, nil, PrecNone},
		token.FALSE:         {literalRule, nil, PrecNone},
		token.NIL:           {literalRule, nil, PrecNone},
		token.TRUE:          {literalRule, nil, PrecNone},
	}
}

func getRule(k token.Kind) parseRule {
	if r, ok := rules[k]; ok {
		return r
	}
	return parseRule{precedence: PrecNone}
}

// Compiler is a one-shot single-pass parser/codegen: construct it once per
// Heap, then call Compile for each chunk to build.
type Compiler struct {
	scanner *lexer.Lexer
	heap    *value.Heap
	chunk   *chunk.Chunk

	current  token.Token
	previous token.Token

	hadError     bool
	panicMode    bool
	tailReturned bool

	errs []error
}

// New returns a Compiler that allocates string constants (literals and
// global-variable names) on heap.
func New(heap *value.Heap) *Compiler {
	return &Compiler{heap: heap}
}

// Compile parses source and emits its bytecode into ch. It returns the
// compile errors found, in source order; a nil/empty result means
// compilation succeeded and ch is safe to run.
func (c *Compiler) Compile(source string, ch *chunk.Chunk) []error {
	c.scanner = lexer.New(source)
	c.chunk = ch
	c.hadError = false
	c.panicMode = false
	c.tailReturned = false
	c.errs = nil

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expected end of expression.")

	if !c.tailReturned {
		c.emitByte(byte(chunk.OpHalt))
	}

	return c.errs
}

// advance pulls the next non-error token into current, reporting every
// leading ERROR token it encounters. Once panicMode is set by the first
// report, errorAt suppresses the rest, so only the first of a run of
// scanner errors is surfaced — deliberate cascade suppression, not a
// truncated loop.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Scan()
		if c.current.Kind != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool {
	return c.current.Kind == k
}

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, message string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// errorAt reports a diagnostic anchored at tok, formatted the way the
// rest of the pipeline's "[line L] Error at X: msg" convention requires:
// "end" for EOF, nothing extra for an ERROR token (whose message already
// carries the description), the offending lexeme otherwise.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var where string
	switch tok.Kind {
	case token.EOF:
		where = "end"
	case token.ERROR:
		where = ""
	default:
		where = "'" + tok.Lexeme + "'"
	}
	c.errs = append(c.errs, CompileError{Line: tok.Line, Where: where, Message: message})
}

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }

func (c *Compiler) error(message string) { c.errorAt(c.previous, message) }

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitBytes(a, b byte) {
	c.emitByte(a)
	c.emitByte(b)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.chunk.WriteConstant(v, c.previous.Line)
}

// synchronize skips tokens after a statement-level error until it finds a
// plausible new statement boundary (a just-consumed ';' or a keyword that
// starts a declaration/statement), so one bad statement doesn't cascade
// into spurious errors for the rest of the program.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		c.error("Expected an expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

// identifierConstant adds name's lexeme to the constant pool as a string
// object and returns its index. Every call adds a fresh slot: constants
// are never deduplicated, so the same global name used in several places
// occupies several pool entries that all compare equal by content at
// runtime.
func (c *Compiler) identifierConstant(name token.Token) int {
	return c.chunk.AddConstant(value.Obj(c.heap.NewStringCopy(name.Lexeme)))
}

func (c *Compiler) varDeclaration() {
	c.consume(token.IDENTIFIER, "Expect variable name.")
	name := c.previous
	idx := c.identifierConstant(name)

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitByte(byte(chunk.OpNil))
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.chunk.WriteIndexedOp(chunk.OpDefineGlobal, chunk.OpDefineGlobalLong, idx, name.Line)
}

func (c *Compiler) statement() {
	if c.match(token.PRINT) {
		c.printStatement()
		return
	}
	c.expressionStatement()
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitByte(byte(chunk.OpPrint))
}

// expressionStatement parses an expression and either discards it (when
// followed by ';', the ordinary statement form) or, when it is the very
// last thing in the program with no trailing ';', treats it as the
// program's result: the bare-expression form spec.md's core testable
// scenarios rely on ("1 + 2" prints "3"). Both forms share one grammar
// rule; only the terminator decides OP_POP vs. OP_RETURN.
func (c *Compiler) expressionStatement() {
	c.expression()

	if c.check(token.SEMICOLON) {
		c.advance()
		c.emitByte(byte(chunk.OpPop))
		return
	}

	if !c.check(token.EOF) {
		c.errorAtCurrent("Expect ';' after expression.")
		return
	}

	c.emitByte(byte(chunk.OpReturn))
	c.tailReturned = true
}

func numberRule(c *Compiler, _ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func stringRule(c *Compiler, _ bool) {
	lexeme := c.previous.Lexeme
	content := lexeme[1 : len(lexeme)-1] // strip surrounding quotes
	c.emitConstant(value.Obj(c.heap.NewStringCopy(content)))
}

func literalRule(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitByte(byte(chunk.OpFalse))
	case token.TRUE:
		c.emitByte(byte(chunk.OpTrue))
	case token.NIL:
		c.emitByte(byte(chunk.OpNil))
	}
}

func groupingRule(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPAREN, "Expected ')' after expression.")
}

func unaryRule(c *Compiler, _ bool) {
	operator := c.previous.Kind
	c.parsePrecedence(PrecUnary)

	switch operator {
	case token.MINUS:
		c.emitByte(byte(chunk.OpNegate))
	case token.BANG:
		c.emitByte(byte(chunk.OpNot))
	}
}

func binaryRule(c *Compiler, _ bool) {
	operator := c.previous.Kind
	rule := getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.PLUS:
		c.emitByte(byte(chunk.OpAdd))
	case token.MINUS:
		c.emitByte(byte(chunk.OpSubtract))
	case token.STAR:
		c.emitByte(byte(chunk.OpMultiply))
	case token.SLASH:
		c.emitByte(byte(chunk.OpDivide))
	case token.EQUAL_EQUAL:
		c.emitByte(byte(chunk.OpEqual))
	case token.BANG_EQUAL:
		c.emitBytes(byte(chunk.OpEqual), byte(chunk.OpNot))
	case token.GREATER:
		c.emitByte(byte(chunk.OpGreater))
	case token.GREATER_EQUAL:
		c.emitBytes(byte(chunk.OpLess), byte(chunk.OpNot))
	case token.LESS:
		c.emitByte(byte(chunk.OpLess))
	case token.LESS_EQUAL:
		c.emitBytes(byte(chunk.OpGreater), byte(chunk.OpNot))
	}
}

func variableRule(c *Compiler, canAssign bool) {
	namedVariable(c, c.previous, canAssign)
}

func namedVariable(c *Compiler, name token.Token, canAssign bool) {
	idx := c.identifierConstant(name)

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.chunk.WriteIndexedOp(chunk.OpSetGlobal, chunk.OpSetGlobalLong, idx, name.Line)
		return
	}
	c.chunk.WriteIndexedOp(chunk.OpGetGlobal, chunk.OpGetGlobalLong, idx, name.Line)
}
