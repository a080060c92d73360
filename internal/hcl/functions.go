package hcl

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// envFunc returns the value of an environment variable, or the optional
// second argument (or "") when it is not set.
func envFunc(lookup func(string) (string, bool)) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the value of an environment variable.",
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if v, ok := lookup(args[0].AsString()); ok {
				return cty.StringVal(v), nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return cty.StringVal(""), nil
		},
	})
}

func (l *Loader) functions() map[string]function.Function {
	lookup := l.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return map[string]function.Function{
		"env":       envFunc(lookup),
		"upper":     stdlib.UpperFunc,
		"lower":     stdlib.LowerFunc,
		"format":    stdlib.FormatFunc,
		"join":      stdlib.JoinFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"coalesce":  stdlib.CoalesceFunc,
		"length":    stdlib.LengthFunc,
	}
}

// settingsEvalContext is used for settings files, which see only functions.
func (l *Loader) settingsEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: l.functions()}
}

// projectEvalContext additionally exposes the registered defaults.
func (l *Loader) projectEvalContext(defaults metadata.Document) (*hcl.EvalContext, error) {
	val, err := DocumentToCty(defaults)
	if err != nil {
		return nil, err
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"defaults": val},
		Functions: l.functions(),
	}, nil
}
