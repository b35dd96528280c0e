package core

import (
	"github.com/google/cel-go/cel"
	"github.com/vuuvv/errors"
)

type CelEvaluator struct{ prg cel.Program }

// CompileExpression compiles a model check expression. `fields` is the
// decoded field map of a bound image.
func CompileExpression(expr string) (*CelEvaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("fields", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &CelEvaluator{prg: prg}, nil
}

func (e *CelEvaluator) Execute(fields map[string]any) (any, error) {
	out, _, err := e.prg.Eval(map[string]any{"fields": fields})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out.Value(), nil
}
