package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-annotate-mcp/internal/config"
	"github.com/ironsheep/image-annotate-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-annotate-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-annotate-mcp - MCP server for interactive image annotation")
			fmt.Println()
			fmt.Println("Usage: image-annotate-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  ANNOTATE_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  ANNOTATE_UNDO_LIMIT=100         Undo steps kept (0 = unlimited)")
			fmt.Println("  ANNOTATE_LINE_WIDTH=5           Stroke width of new shapes")
			fmt.Println("  ANNOTATE_FONT_SIZE=24           Font size of new labels")
			fmt.Println("  ANNOTATE_PALETTE_SIZE=6         Colors sampled from the background")
			fmt.Println("  ANNOTATE_COLOR=#FF3B30          Draw color of new annotations")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	debug := log.New(io.Discard, "", 0)
	if cfg.Debug() {
		debug = log.Default()
		log.Printf("Image Annotate MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv, err := server.New(cfg, server.WithLogger(debug))
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
