// Package hcl validates Terraform output with the HCL native syntax parser.
package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// filename labels parse diagnostics.
const filename = "main.tf"

// Ensure Validator implements the interface.
var _ driven.SyntaxValidator = (*Validator)(nil)

// Validator accepts code only when it parses as HCL and declares at least
// one attribute or block.
type Validator struct{}

// New creates a Terraform validator.
func New() *Validator {
	return &Validator{}
}

// Tool returns terraform.
func (v *Validator) Tool() domain.Tool {
	return domain.ToolTerraform
}

// Validate parses code and reports the first error diagnostic.
func (v *Validator) Validate(code string) error {
	file, diags := hclsyntax.ParseConfig([]byte(code), filename, hcl.InitialPos)
	if diags.HasErrors() {
		for _, d := range diags {
			if d.Severity == hcl.DiagError {
				return d
			}
		}
		return diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return fmt.Errorf("unexpected body type %T", file.Body)
	}
	if len(body.Attributes) == 0 && len(body.Blocks) == 0 {
		return fmt.Errorf("configuration declares no blocks or attributes")
	}
	return nil
}
