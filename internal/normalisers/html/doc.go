// Package html provides a Normaliser for saved HTML reference pages.
// It extracts readable text, dropping scripts, styles and markup, while
// keeping the indentation of <pre> blocks so embedded HCL and YAML
// examples survive intact.
package html
