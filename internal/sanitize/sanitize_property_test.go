//go:build property
// +build property

package sanitize

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var hostileFragments = []string{
	`<script>alert(1)</script>`,
	`<ScRiPt src="x.js"></ScRiPt>`,
	`<img src=x onerror=alert(1)>`,
	`<div onclick="steal()">`,
	`<body onload="go()">`,
	`<a href="javascript:alert(1)">`,
	`<a href=" javascript:alert(1)">`,
	`<img src="jAvAsCrIpT:alert(1)">`,
	`<input onfocus=alert(1) autofocus>`,
	`<form onsubmit="x()">`,
	`</div>`,
	`<p>`,
	`<button id="cta">`,
}

// TestHostileMarkupNeverSurvives checks that random mixes of hostile and benign
// fragments never leak script elements, handlers or javascript: URLs.
func TestHostileMarkupNeverSurvives(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	fragment := gen.IntRange(0, len(hostileFragments)-1).Map(func(i int) string {
		return hostileFragments[i]
	})

	properties.Property("sanitized output is script free", prop.ForAll(
		func(parts []string, filler string) bool {
			out := strings.ToLower(HTML(strings.Join(parts, filler)))
			if strings.Contains(out, "<script") || strings.Contains(out, "javascript:") {
				return false
			}
			for _, attr := range ForbiddenAttrs {
				if strings.Contains(out, attr+"=") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(fragment),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
