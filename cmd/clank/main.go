package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/axonlang/clank/internal/compiler"
	"github.com/axonlang/clank/internal/config"
)

// Version info - set by ldflags during build.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		configPath  = flag.String("config", "", "Path to a YAML config file (defaults to config.Default())")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch command := flag.Arg(0); command {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: missing file argument")
			fmt.Println("Usage: clank check <ast.json>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1), *configPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("clank %s\n", Version)
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println("clank - the Axon type checker and repair generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  clank <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check <ast.json>   Check a JSON AST document, print the CompileResult as JSON")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// checkFile reads a spec §6 JSON AST document and hands it to
// compiler.CompileJSON (no reparser: source-fragment nodes are the
// lexer/parser collaborator's concern, out of scope for this standalone
// entrypoint — a fragment in the input surfaces as an E0009 diagnostic
// in the printed CompileResult rather than a bare stderr error), then
// prints the resulting CompileResult as JSON on stdout.
func checkFile(path string, cfgPath string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %q: %v\n", path, err)
		os.Exit(1)
	}

	cfg := config.Default()
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	compiler.Version = Version
	c := compiler.New(compiler.WithConfig(cfg))
	result, err := c.CompileJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if result.Status == "error" {
		os.Exit(1)
	}
}
