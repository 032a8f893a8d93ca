// Package validators maps IaC tools to syntax validators.
package validators

import (
	"context"
	"sort"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
	"github.com/NovemberMoon/iac-generator-rag/internal/validators/hcl"
	"github.com/NovemberMoon/iac-generator-rag/internal/validators/yaml"
)

// Ensure Registry implements the interface.
var _ driven.CodeValidator = (*Registry)(nil)

// Registry dispatches validation by tool.
// Validation never fails with an error: invalid code is a false result
// and the parser diagnostic goes to the warning log.
type Registry struct {
	validators map[domain.Tool]driven.SyntaxValidator
	failOpen   bool
}

// NewRegistry creates an empty registry. failOpen decides the result for
// tools without a registered validator.
func NewRegistry(failOpen bool) *Registry {
	return &Registry{
		validators: make(map[domain.Tool]driven.SyntaxValidator),
		failOpen:   failOpen,
	}
}

// NewDefaultRegistry creates a registry with the terraform and ansible validators.
func NewDefaultRegistry(failOpen bool) *Registry {
	r := NewRegistry(failOpen)
	r.Register(hcl.New())
	r.Register(yaml.New())
	return r
}

// Register adds a validator under its tool, replacing any previous one.
func (r *Registry) Register(v driven.SyntaxValidator) {
	r.validators[v.Tool()] = v
}

// Has returns true if the tool has a validator.
func (r *Registry) Has(tool domain.Tool) bool {
	_, ok := r.validators[tool]
	return ok
}

// Tools returns the tools with validators in sorted order.
func (r *Registry) Tools() []domain.Tool {
	tools := make([]domain.Tool, 0, len(r.validators))
	for t := range r.validators {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i] < tools[j] })
	return tools
}

// Validate reports whether code is well-formed for tool.
func (r *Registry) Validate(ctx context.Context, code string, tool domain.Tool) bool {
	if ctx.Err() != nil {
		return false
	}

	v, ok := r.validators[tool]
	if !ok {
		if !r.failOpen {
			logger.Warn("validator: no validator for tool %q, rejecting output", tool)
		} else {
			logger.Debug("validator: no validator for tool %q, accepting output", tool)
		}
		return r.failOpen
	}

	if err := v.Validate(code); err != nil {
		logger.Warn("validator: %s output rejected: %v", tool, err)
		return false
	}
	logger.Debug("validator: %s output is well-formed", tool)
	return true
}
