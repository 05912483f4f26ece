package expr

import (
	"maps"
	"strings"
	"sync"

	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

type Rule struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

// Exec implements authz.Rule.
func (r *Rule) Exec(env map[string]any) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	vars := maps.Clone(env)
	vars["domainOf"] = domainOf

	result, err := expr.Run(program, vars)
	if err != nil {
		return false, errors.WithStack(err)
	}

	allowed, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return allowed, nil
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			r.compileErr = errors.WithStack(err)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

// Validate compiles the rule, reporting syntax errors early.
func (r *Rule) Validate() error {
	_, err := r.getProgram()
	return errors.WithStack(err)
}

func (r *Rule) String() string {
	return r.script
}

func NewRule(script string) *Rule {
	return &Rule{script: script}
}

var _ authz.Rule = &Rule{}

func domainOf(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}

	return strings.ToLower(domain)
}
