package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mvpbuild <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build a landing page from a page spec")
	fmt.Fprintln(w, "  serve      Run the builder HTTP API")
	fmt.Fprintln(w, "  preview    Build a page and save a PNG thumbnail")
	fmt.Fprintln(w, "  doctor     Check browser and store setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mvpbuild help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show details")
}

func printSpecFlags(w io.Writer) {
	fmt.Fprintln(w, "  -f, --file <path>         Page spec file (YAML or JSON)")
	fmt.Fprintln(w, "      --format <s>          Override body format: html, markdown")
	fmt.Fprintln(w, "      --target-origin <url> Origin tracking messages are posted to")
	fmt.Fprintln(w, "      --stylesheet <url>    Utility stylesheet URL")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mvpbuild build -f <page.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sanitize, assemble and validate a landing page.")
	fmt.Fprintln(w, "Exits 5 with the validation message when the page is rejected.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printSpecFlags(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: stdout)")
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mvpbuild serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  POST   /api/mvp/validate")
	fmt.Fprintln(w, "  PUT    /api/ideas/{ideaId}/mvp")
	fmt.Fprintln(w, "  GET    /api/ideas/{ideaId}/mvp")
	fmt.Fprintln(w, "  DELETE /api/ideas/{ideaId}/mvp")
	fmt.Fprintln(w, "  POST   /api/events")
	fmt.Fprintln(w, "  GET    /healthz")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address")
	printCommonFlags(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mvpbuild preview -f <page.yaml> -o <thumb.png> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a page and capture it in headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printSpecFlags(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output PNG file")
	fmt.Fprintln(w, "      --width <n>           Viewport width in pixels")
	fmt.Fprintln(w, "      --height <n>          Viewport height in pixels")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g. 30s)")
	printCommonFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mvpbuild doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome, the temp directory and the page store are usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output JSON")
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mvpbuild version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mvpbuild help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return usageError("unknown command: %s", args[0])
	}
	return nil
}
