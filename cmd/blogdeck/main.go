package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogdeck",
		Short: "Turn blog posts into slide decks",
		Long: `blogdeck reads markdown blog posts with YAML front matter and turns
each one into a slide deck: a title slide followed by content, code and
image slides in source order. Decks are written as JSON artifacts or
served on demand with live reload.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Config file (default: ./blogdeck.toml)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("content-dir", "", "Directory holding the source posts (overrides config)")
	flags.String("output-dir", "", "Directory deck artifacts are written to (overrides config)")
	flags.Int("max-chars", 0, "Paragraph grouping threshold in characters (overrides config)")

	root.AddCommand(
		newGenerateCmd(),
		newServeCmd(),
		newInspectCmd(),
		newStatusCmd(),
	)

	return root
}
