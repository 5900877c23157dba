// Package exprs evaluates step `when:` conditions.
//
// Conditions are expr-lang expressions with two variables in scope:
//
//	env      map of environment variables visible to the step
//	results  map of section name to true/false for steps that already ran
//
// Example: `env.CI == "true" && results.setup`.
package exprs

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Scope is the variable environment a condition is evaluated against.
type Scope struct {
	Env     map[string]string
	Results map[string]bool
}

// Eval compiles and runs a condition source, requiring a boolean result.
func Eval(source string, scope Scope) (bool, error) {
	env := map[string]any{
		"env":     scope.Env,
		"results": scope.Results,
	}

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("failed to compile condition %q: %w", source, err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate condition %q: %w", source, err)
	}

	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not evaluate to a boolean", source)
	}
	return result, nil
}
