package html

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm"}
}

// Normalise converts an HTML page to plain text.
func (n *Normaliser) Normalise(ctx context.Context, source string, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if raw == nil {
		return "", fmt.Errorf("%w: %s has no content", domain.ErrInvalidInput, source)
	}
	return stripHTML(string(raw)), nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	navTag            = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	preTag            = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	placeholder       = regexp.MustCompile(`\x00PRE(\d+)\x00`)
)

// stripHTML removes HTML tags and extracts readable text content.
// <pre> bodies are set aside first and restored verbatim.
func stripHTML(content string) string {
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, headTag, svgTag, navTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	var blocks []string
	content = preTag.ReplaceAllStringFunc(content, func(m string) string {
		body := preTag.FindStringSubmatch(m)[1]
		body = html.UnescapeString(allTags.ReplaceAllString(body, ""))
		blocks = append(blocks, strings.Trim(body, "\n"))
		return fmt.Sprintf("\n\x00PRE%d\x00\n", len(blocks)-1)
	})

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	var result []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(multiSpaces.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		if m := placeholder.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[1]) //nolint:errcheck // digits written by the placeholder above
			line = blocks[idx]
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
