// Package template expands {{ }} placeholders in command strings using CEL
// expressions, so resize commands can reference the source path, target
// dimensions and environment variables.
package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/k1LoW/errors"
)

var placeholderRe = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Expand replaces every {{ expr }} in tmpl with the result of evaluating
// expr as a CEL expression against the store. Referencing a variable that
// is not in the store is an error.
func Expand(tmpl string, store map[string]any) (_ string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	env, err := createCELEnv(store)
	if err != nil {
		return "", err
	}
	var evalErr error
	expanded := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		if evalErr != nil {
			return ""
		}
		expr := strings.TrimSpace(placeholderRe.FindStringSubmatch(m)[1])
		v, err := evalExpr(env, expr, store)
		if err != nil {
			evalErr = err
			return ""
		}
		return v
	})
	if evalErr != nil {
		return "", evalErr
	}
	return expanded, nil
}

// EnvironToMap returns the process environment as a map for use in a
// template store under the "env" key.
func EnvironToMap() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

func createCELEnv(store map[string]any) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(store))
	for k := range store {
		opts = append(opts, cel.Variable(k, cel.DynType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return env, nil
}

func evalExpr(env *cel.Env, expr string, store map[string]any) (string, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return "", fmt.Errorf("failed to compile expression %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return "", fmt.Errorf("failed to create program for expression %q: %w", expr, err)
	}
	out, _, err := prg.Eval(store)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate expression %q: %w", expr, err)
	}
	return fmt.Sprintf("%v", out.Value()), nil
}
