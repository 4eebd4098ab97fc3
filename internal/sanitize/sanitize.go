// Package sanitize strips script-capable markup from user-authored landing
// page bodies.
//
// The policy is fixed: a closed list of layout, content and form elements, a
// handful of global attributes plus data-* attributes, and URL attributes
// restricted to an allow-list of schemes. Anything else is removed. Content
// of a removed element is kept as text, except for <script> (and the other
// raw-text containers bluemonday skips), whose content is dropped.
package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags is the closed list of elements that survive sanitization.
var AllowedTags = []string{
	// headings and text
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr", "span", "div", "blockquote", "pre", "code",
	"strong", "em", "b", "i", "u", "s", "small", "mark", "sub", "sup",
	// lists
	"ul", "ol", "li", "dl", "dt", "dd",
	// links and media
	"a", "img", "picture", "source", "video", "audio", "figure", "figcaption",
	// forms
	"form", "input", "textarea", "select", "option", "label", "button",
	"fieldset", "legend",
	// semantic containers
	"section", "article", "header", "footer", "nav", "main", "aside",
	// tables
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
}

// GlobalAttrs are allowed on every allowed element.
var GlobalAttrs = []string{"class", "id", "alt", "target", "rel"}

// URLAttrs are allowed when their value matches AllowedURI.
var URLAttrs = []string{"href", "src"}

// formAttrs keep signup forms usable. None of them can carry script.
var formAttrs = []string{"type", "name", "placeholder", "value", "for"}

var formElements = []string{"form", "input", "textarea", "select", "option", "label", "button"}

// ForbiddenAttrs lists the inline event handlers the editor is known to emit.
// They never survive because only allow-listed attributes do; the list
// exists for tests and diagnostics.
var ForbiddenAttrs = []string{
	"onclick", "onerror", "onload", "onmouseover", "onsubmit",
	"onfocus", "onblur", "onchange", "oninput",
}

// AllowedURI accepts http(s), mailto, tel, callto, cid, xmpp and data
// schemes plus relative references. Everything else, javascript: included,
// fails to match.
var AllowedURI = regexp.MustCompile(`(?i)^(?:(?:https?|mailto|tel|callto|cid|xmpp|data):|[^a-z]|[a-z+.\-]+(?:[^a-z+.\-:]|$))`)

var allowedSchemes = []string{"http", "https", "mailto", "tel", "callto", "cid", "xmpp", "data"}

var policy = sync.OnceValue(newPolicy)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowNoAttrs().OnElements(AllowedTags...)
	p.AllowAttrs(GlobalAttrs...).Globally()
	p.AllowAttrs(URLAttrs...).Matching(AllowedURI).Globally()
	p.AllowAttrs(formAttrs...).OnElements(formElements...)
	p.AllowDataAttributes()
	p.AllowURLSchemes(allowedSchemes...)
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}

// HTML returns body with every disallowed element and attribute removed.
// It never fails: worst case the result is plain text. Safe for concurrent use.
func HTML(body string) string {
	if body == "" {
		return ""
	}
	return policy().Sanitize(body)
}
