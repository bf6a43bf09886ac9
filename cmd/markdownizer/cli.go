package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Identity     *markdownizer.IdentityResolver
	Pipeline     *pipeline.Pipeline
	Writer       markdownizer.PageWriter
	Skeletonizer markdownizer.Skeletonizer
	Service      markdownizer.ConversionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline stages to stderr"`
	Home    string `type:"path" env:"MARKDOWNIZER_HOME" default:"${default_home}" help:"State directory for the user ID"`

	Convert   ConvertCmd   `cmd:"" help:"Convert web pages to Markdown"`
	Skeleton  SkeletonCmd  `cmd:"" help:"Print the skeleton and token table of an HTML fragment"`
	Rehydrate RehydrateCmd `cmd:"" help:"Restore text into converted Markdown"`
	Serve     ServeCmd     `cmd:"" help:"Run the conversion server"`
	Whoami    WhoamiCmd    `cmd:"" help:"Print the persistent user ID"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Page URLs to convert"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome before extracting"`
	Chrome      string        `type:"path" env:"MARKDOWNIZER_CHROME" help:"Chrome binary used with --browser"`
	APIURL      string        `name:"api-url" env:"MARKDOWNIZER_API_URL" help:"Conversion server endpoint; converts in-process when empty"`
	Origin      string        `env:"MARKDOWNIZER_ORIGIN" help:"Origin header sent to the conversion server"`
	Output      string        `short:"o" type:"path" help:"Directory to write Markdown files to"`
	FrontMatter bool          `help:"Prefix output with YAML front matter"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent page limit"`
	RateLimit   float64       `default:"1" help:"Requests per second per domain"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Per-page fetch timeout"`
}

// SkeletonCmd is the "skeleton" subcommand.
type SkeletonCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"HTML file (stdin when omitted)"`
}

// RehydrateCmd is the "rehydrate" subcommand.
type RehydrateCmd struct {
	Tokens string `required:"" type:"existingfile" help:"JSON file written by the skeleton command"`
	File   string `arg:"" optional:"" type:"existingfile" help:"Markdown skeleton file (stdin when omitted)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr              string   `env:"MARKDOWNIZER_ADDR" default:":8080" help:"Listen address"`
	AllowedOrigins    []string `env:"MARKDOWNIZER_ALLOWED_ORIGINS" sep:"," help:"Origins allowed to call the server; all when empty"`
	RatePerMinute     float64  `env:"MARKDOWNIZER_RATE_PER_MINUTE" default:"60" help:"Requests per minute per user"`
	Burst             int      `env:"MARKDOWNIZER_BURST" default:"10" help:"Request burst per user"`
	HostRatePerMinute float64  `env:"MARKDOWNIZER_HOST_RATE_PER_MINUTE" default:"600" help:"Requests per minute per remote host"`
	HostBurst         int      `env:"MARKDOWNIZER_HOST_BURST" default:"50" help:"Request burst per remote host"`
}

// WhoamiCmd is the "whoami" subcommand.
type WhoamiCmd struct{}
