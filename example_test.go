package mvpbuild_test

import (
	"context"
	"fmt"
	"strings"

	mvpbuild "github.com/alnah/go-mvpbuild"
)

// Example builds a landing page with a single call-to-action button.
func Example() {
	b, err := mvpbuild.NewBuilder(mvpbuild.WithTargetOrigin("https://app.example.com"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res := b.Build(context.Background(), mvpbuild.PageSpec{
		IdeaID:      "idea-1",
		BodyContent: `<h1>Acme</h1><button id="join" onclick="evil()">Join</button>`,
		MetaTitle:   "Acme",
		CTAButtonID: "join",
	})

	fmt.Println(res.IsValid)
	fmt.Println(strings.Contains(res.HTML, "onclick"))
	fmt.Println(strings.Count(res.HTML, "<script"))
	// Output:
	// true
	// false
	// 1
}

// Example_invalid shows the message returned when the CTA is missing.
func Example_invalid() {
	b, err := mvpbuild.NewBuilder()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res := b.Build(context.Background(), mvpbuild.PageSpec{
		IdeaID:      "idea-1",
		BodyContent: `<div id="join">Join</div>`,
		CTAButtonID: "join",
	})

	fmt.Println(res.IsValid)
	fmt.Println(res.ErrorMessage)
	// Output:
	// false
	// The id 'join' can only be used on <button> elements.
}

// ExampleParseTrackingMessage decodes a message received by the parent frame.
func ExampleParseTrackingMessage() {
	ev, err := mvpbuild.ParseTrackingMessage([]byte(
		`{"type":"founderSignalTrack","eventType":"scroll_depth","ideaId":"idea-1","mvpId":null,"metadata":{"depth":50}}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(ev.Type, ev.Metadata["depth"])
	// Output: scroll_depth 50
}
