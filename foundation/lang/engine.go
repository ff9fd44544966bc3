// File: engine.go
// Title: Language Engine
// Description: Provides the high-level interface used by the REPL and the
//              CLI. Enforces the input length limit, logs and times each
//              tokenize and parse run.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial engine implementation
// - 2026-10-17 v0.1.0: Added analysis cache

package lang

import (
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang/ast"
	"github.com/msto63/monkey/foundation/lang/lexer"
	"github.com/msto63/monkey/foundation/lang/parser"
	"github.com/msto63/monkey/foundation/lang/token"
	"github.com/msto63/monkey/pkg/core/cache"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is zero
const DefaultMaxInputLength = 4096

// NoInputLimit disables the input length check
const NoInputLimit = -1

// cacheTTL bounds how long an analysis result is reused
const cacheTTL = 10 * time.Minute

// Engine combines lexer and parser
type Engine struct {
	logger  *mdwlog.Logger
	options Options
	results *cache.Cache[*Result]
}

// Options configures the engine
type Options struct {
	Logger *mdwlog.Logger

	// MaxInputLength is the maximum input size in bytes. Negative disables
	// the limit.
	MaxInputLength int

	// Strict is passed on to the parser
	Strict bool

	// CacheSize is the number of Analyze results kept per input.
	// Zero or negative disables the cache.
	CacheSize int
}

// Result holds everything produced for one input
type Result struct {
	Input   string
	Tokens  []token.Token
	Program *ast.Program // nil when Errors is not empty
	Errors  []string
}

// OK reports whether the input parsed without errors
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// New creates a new engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	e := &Engine{
		logger:  opts.Logger.WithField("component", "lang-engine"),
		options: opts,
	}
	if opts.CacheSize > 0 {
		e.results = cache.New[*Result](cache.Config{
			MaxItems: opts.CacheSize,
			TTL:      cacheTTL,
		})
	}
	return e
}

// Options returns the effective engine options
func (e *Engine) Options() Options {
	return e.options
}

// Tokenize returns all tokens of input including the final EOF
func (e *Engine) Tokenize(input string) ([]token.Token, error) {
	if err := e.checkInput(input, "lang.Tokenize"); err != nil {
		return nil, err
	}

	timer := e.logger.StartTimer("tokenize").WithLevel(mdwlog.LevelTrace)
	tokens := lexer.TokenizeInput(input)
	timer.WithField("tokens", len(tokens)).Stop()

	if n := countIllegal(tokens); n > 0 {
		e.logger.Debug("Input contains illegal characters", mdwlog.Fields{
			"illegal": n,
		})
	}

	return tokens, nil
}

// Parse parses input into a program. Syntax errors are returned as a
// *mdwerror.Error with code SYNTAX.
func (e *Engine) Parse(input string) (*ast.Program, error) {
	if err := e.checkInput(input, "lang.Parse"); err != nil {
		return nil, err
	}

	timer := e.logger.StartTimer("parse").WithLevel(mdwlog.LevelTrace)
	defer timer.Stop()

	return parser.Parse(input, e.parserOptions())
}

// Analyze tokenizes and parses input in one go. Only input validation
// failures are returned as error; syntax errors are part of the result.
// Results may be shared between calls and must not be modified.
func (e *Engine) Analyze(input string) (*Result, error) {
	if err := e.checkInput(input, "lang.Analyze"); err != nil {
		return nil, err
	}

	if e.results == nil {
		return e.analyze(input), nil
	}
	if result, ok := e.results.Get(input); ok {
		e.logger.Trace("Analysis served from cache")
		return result, nil
	}
	result := e.analyze(input)
	e.results.Set(input, result)
	return result, nil
}

// CacheStats returns hit and miss counts of the analysis cache
func (e *Engine) CacheStats() (hits, misses int64) {
	if e.results == nil {
		return 0, 0
	}
	hits, misses, _ = e.results.Stats()
	return hits, misses
}

func (e *Engine) analyze(input string) *Result {
	result := &Result{
		Input:  input,
		Tokens: lexer.TokenizeInput(input),
	}

	p := parser.New(lexer.New(input), e.parserOptions())
	result.Program = p.ParseProgram()
	result.Errors = p.Errors()

	e.logger.Trace("Input analyzed", mdwlog.Fields{
		"tokens": len(result.Tokens),
		"errors": len(result.Errors),
	})

	return result
}

func (e *Engine) parserOptions() parser.Options {
	return parser.Options{
		Logger: e.logger,
		Strict: e.options.Strict,
	}
}

func (e *Engine) checkInput(input, operation string) error {
	limit := e.options.MaxInputLength
	if limit < 0 || len(input) <= limit {
		return nil
	}

	err := mdwerror.Newf("input exceeds maximum length: %d > %d", len(input), limit).
		WithCode(mdwerror.CodeInputTooLong).
		WithOperation(operation).
		WithDetail("length", len(input)).
		WithDetail("limit", limit)
	e.logger.LogError(err)
	return err
}

func countIllegal(tokens []token.Token) int {
	n := 0
	for _, t := range tokens {
		if t.Type == token.Illegal {
			n++
		}
	}
	return n
}
