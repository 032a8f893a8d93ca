package domain

import "strings"

// Tool identifies the IaC grammar a generation targets.
// Unrecognised names are carried as-is so validation can apply
// the fail-open policy to them.
type Tool string

// Supported tools.
const (
	// ToolTerraform produces HashiCorp Configuration Language.
	ToolTerraform Tool = "terraform"

	// ToolAnsible produces YAML playbooks.
	ToolAnsible Tool = "ansible"
)

// DefaultTool is used when a request names no tool.
const DefaultTool = ToolTerraform

// ParseTool normalises a tool name. An empty name yields DefaultTool.
func ParseTool(s string) Tool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTool
	}
	return Tool(s)
}

// Known returns true if the tool has a grammar and validator.
func (t Tool) Known() bool {
	switch t {
	case ToolTerraform, ToolAnsible:
		return true
	default:
		return false
	}
}

// Extension returns the artifact file extension for the tool, without a dot.
func (t Tool) Extension() string {
	switch t {
	case ToolTerraform:
		return "tf"
	case ToolAnsible:
		return "yml"
	default:
		return "txt"
	}
}

// Grammar returns a human-readable name of the tool's native syntax.
func (t Tool) Grammar() string {
	switch t {
	case ToolTerraform:
		return "HashiCorp Configuration Language (HCL) for Terraform"
	case ToolAnsible:
		return "YAML Ansible playbook"
	default:
		return "the native configuration syntax of " + string(t)
	}
}

// String returns the string representation.
func (t Tool) String() string {
	return string(t)
}

// ToolFromExtension maps a file extension (with or without the dot)
// back to a tool. It returns false for extensions no tool produces.
func ToolFromExtension(ext string) (Tool, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "tf", "hcl":
		return ToolTerraform, true
	case "yml", "yaml":
		return ToolAnsible, true
	default:
		return "", false
	}
}
