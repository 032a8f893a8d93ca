// Package yaml validates Ansible output as YAML.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.SyntaxValidator = (*Validator)(nil)

// Validator accepts code when every document in the stream decodes and
// the first document is a non-empty mapping or sequence.
type Validator struct{}

// New creates an Ansible validator.
func New() *Validator {
	return &Validator{}
}

// Tool returns ansible.
func (v *Validator) Tool() domain.Tool {
	return domain.ToolAnsible
}

// Validate decodes all documents and checks the shape of the first.
func (v *Validator) Validate(code string) error {
	dec := yaml.NewDecoder(strings.NewReader(code))

	var first *yaml.Node
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if first == nil {
			first = &node
		}
	}

	if first == nil || len(first.Content) == 0 {
		return fmt.Errorf("document is empty")
	}

	root := first.Content[0]
	switch root.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		if len(root.Content) == 0 {
			return fmt.Errorf("top-level collection is empty")
		}
		return nil
	default:
		return fmt.Errorf("top-level value must be a mapping or sequence, got %s", kindName(root.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}
