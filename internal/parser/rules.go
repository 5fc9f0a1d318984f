package parser

import (
	"regexp"
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// rule is a single extraction pattern over generated HTML. Its first capture
// group is the extracted value.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

// find returns the first capture of the rule, and whether the pattern matched at all.
func (r rule) find(html string) (string, bool) {
	m := r.pattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// firstNonEmpty applies rules in order and returns the first non-empty capture.
func firstNonEmpty(rules []rule, html string) (string, bool) {
	for _, r := range rules {
		if v, ok := r.find(html); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// firstMatch applies rules in order and returns the capture of the first rule that matches.
func firstMatch(rules []rule, html string) (string, bool) {
	for _, r := range rules {
		if v, ok := r.find(html); ok {
			return v, true
		}
	}
	return "", false
}

var descriptionRules = []rule{
	{"comment-block", regexp.MustCompile(`(?s)<div class="tsd-comment[^>]*>(.*?)</div>`)},
	{"comment-panel", regexp.MustCompile(`(?s)<section class="tsd-panel[^>]*tsd-comment[^>]*>(.*?)</section>`)},
	{"first-paragraph", regexp.MustCompile(`<p>(.*?)</p>`)},
}

var (
	memberSection = regexp.MustCompile(`(?s)<section[^>]*class="[^"]*tsd-member[^"]*"[^>]*>(.*?)</section>`)
	propertyBlock = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*tsd-property[^"]*"[^>]*>(.*?)</div>`)
	parameterItem = regexp.MustCompile(`(?s)<li[^>]*>(.*?)<span[^>]*>([^<]+)</span>[^:]*:[^<]*(.*?)</li>`)
)

var methodNameRules = []rule{
	{"heading", regexp.MustCompile(`(?s)<h3[^>]*>(.*?)</h3>`)},
	{"anchor-id", regexp.MustCompile(`id="([^"]+)"`)},
}

var propertyNameRules = []rule{
	{"anchor-id", regexp.MustCompile(`id="([^"]+)"`)},
	{"heading", regexp.MustCompile(`(?s)<h4[^>]*>(.*?)</h4>`)},
}

var (
	signatureRule     = rule{"signature", regexp.MustCompile(`(?s)<div[^>]*class="[^"]*tsd-signature[^"]*"[^>]*>(.*?)</div>`)}
	memberCommentRule = rule{"member-comment", regexp.MustCompile(`(?s)<div[^>]*class="[^"]*tsd-comment[^"]*"[^>]*>(.*?)</div>`)}
	returnTypeRule    = rule{"returns", regexp.MustCompile(`(?i)Returns[^:]*:[^<]*<[^>]*>([^<]+)</`)}
	typeAnnotation    = rule{"type-annotation", regexp.MustCompile(`:\s*<[^>]*>([^<]+)</`)}
)

// extractDescription returns the entry description from the first description rule
// that yields text.
func extractDescription(html string) string {
	raw, ok := firstNonEmpty(descriptionRules, html)
	if !ok {
		return ""
	}
	return truncate(StripMarkup(raw), MaxDescriptionLength)
}

// extractMethods collects methods from member sections. Sections whose name cannot
// be read, or that name a TypeDoc styling anchor, are skipped.
func extractMethods(html string) []docs.Method {
	var methods []docs.Method
	for _, m := range memberSection.FindAllStringSubmatch(html, -1) {
		section := m[1]
		rawName, ok := firstMatch(methodNameRules, section)
		if !ok {
			continue
		}
		name := StripMarkup(rawName)
		if name == "" || strings.HasPrefix(name, "tsd-") {
			continue
		}

		method := docs.Method{Name: name}
		if sig, ok := signatureRule.find(section); ok {
			method.Signature = StripMarkup(sig)
		}
		if desc, ok := memberCommentRule.find(section); ok {
			method.Description = truncate(StripMarkup(desc), MaxMethodDescriptionLength)
		}
		methods = append(methods, method)
	}
	return methods
}

// extractProperties collects properties from property blocks.
func extractProperties(html string) []docs.Property {
	var props []docs.Property
	for _, m := range propertyBlock.FindAllStringSubmatch(html, -1) {
		block := m[1]
		rawName, ok := firstMatch(propertyNameRules, block)
		if !ok {
			continue
		}
		name := StripMarkup(rawName)
		if name == "" || strings.HasPrefix(name, "tsd-") {
			continue
		}
		props = append(props, docs.Property{Name: name, Type: extractType(block)})
	}
	return props
}

// extractParameters collects function parameters from list items.
func extractParameters(html string) []docs.Parameter {
	var params []docs.Parameter
	for _, m := range parameterItem.FindAllStringSubmatch(html, -1) {
		params = append(params, docs.Parameter{
			Name:        StripMarkup(m[2]),
			Type:        StripMarkup(m[3]),
			Description: StripMarkup(m[1]),
		})
	}
	return params
}

func extractReturnType(html string) string {
	v, ok := returnTypeRule.find(html)
	if !ok {
		return ""
	}
	return StripMarkup(v)
}

func extractType(html string) string {
	v, ok := typeAnnotation.find(html)
	if !ok {
		return ""
	}
	return StripMarkup(v)
}
