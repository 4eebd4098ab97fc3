// Package mvpbuild builds the landing pages ("MVPs") founders publish to
// validate a startup idea.
//
// # Quick Start
//
// Create a builder and build a page from the editor's output:
//
//	b, err := mvpbuild.NewBuilder(mvpbuild.WithTargetOrigin("https://app.example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := b.Build(ctx, mvpbuild.PageSpec{
//	    IdeaID:      "idea-42",
//	    BodyContent: `<h1>Acme</h1><button id="cta">Join</button>`,
//	    MetaTitle:   "Acme",
//	    CTAButtonID: "cta",
//	})
//	if !result.IsValid {
//	    fmt.Println(result.ErrorMessage)
//	    return
//	}
//	os.WriteFile("index.html", []byte(result.HTML), 0o644)
//
// Build never returns an error: every failure is an invalid
// ValidationResult carrying a message that can be shown to the page author.
//
// # Build Pipeline
//
//  1. Markdown conversion via goldmark, when PageSpec.Format is "markdown"
//  2. Sanitization of the body against a fixed allow-list (bluemonday)
//  3. Document assembly: meta tags, utility stylesheet, page CSS
//  4. Tracking script injection (page view, CTA click, scroll depth,
//     time on page), reported to the embedding frame with postMessage
//  5. Structural validation: the CTA id must exist and only be used on
//     <button> elements
//
// # Tracking Messages
//
// Published pages post messages of the form
//
//	{type: "founderSignalTrack", eventType, ideaId, mvpId, metadata}
//
// to their parent frame. ParseTrackingMessage decodes them.
//
// # Previews
//
// Previewer renders a built page to a PNG thumbnail using headless Chrome
// (go-rod). Set ROD_BROWSER_BIN to use a preinstalled browser.
package mvpbuild
