package scripting

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Evaluator runs data scripts: each script executes in a fresh sandboxed VM
// and its returned value is converted into plain Go data.
//
// Evaluator is safe for concurrent use; it holds no VM between calls.
type Evaluator struct {
	logger    *zap.Logger
	instLimit int
}

// NewEvaluator creates an Evaluator.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a non-nil Evaluator.
func NewEvaluator(instLimit int, logger *zap.Logger) *Evaluator {
	if logger == nil {
		panic("scripting.NewEvaluator: logger must not be nil")
	}
	return &Evaluator{logger: logger, instLimit: instLimit}
}

// EvalFile reads and evaluates the script at path.
//
// Precondition: path must name a readable file.
// Postcondition: Returns the script's converted return value, or a non-nil error.
func (e *Evaluator) EvalFile(path string) (any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return e.Eval(path, string(src))
}

// Eval compiles and runs src as a chunk named name and converts its first
// return value with ToGo. A chunk that returns nothing yields nil.
//
// Postcondition: Returns the converted value, or a non-nil error on compile,
// runtime, instruction-limit or conversion failure.
func (e *Evaluator) Eval(name, src string) (any, error) {
	L, cancel := NewSandboxedState(e.instLimit)
	defer cancel()
	defer L.Close()
	e.RegisterModules(L, name)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling %q: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("scripting: running %q: %w", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	v, err := ToGo(ret)
	if err != nil {
		return nil, fmt.Errorf("scripting: result of %q: %w", name, err)
	}
	e.logger.Debug("script evaluated", zap.String("script", name))
	return v, nil
}
