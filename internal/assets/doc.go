// Package assets provides the templates embedded into generated landing pages.
//
// Templates are compiled into the binary with go:embed and looked up by name
// (without extension). Names are validated so a caller-supplied name can never
// escape the templates directory.
//
//	templates/
//	└── tracking.html   # analytics script appended to every landing page
package assets
