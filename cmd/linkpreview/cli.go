package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/linkpreview"
	"github.com/fwojciec/linkpreview/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Batch    *pipeline.BatchPreviewer
	Previews linkpreview.PreviewService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and extractions to stderr"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch pages and print their link previews"`
	History HistoryCmd `cmd:"" help:"List saved previews"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved preview"`
	Types   TypesCmd   `cmd:"" help:"List recognized og:type values"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Page URLs to preview"`
	Format      string        `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
	Save        bool          `short:"s" help:"Save previews to the history database"`
	Render      bool          `short:"r" help:"Render pages in headless Chrome before extracting"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" default:"2" help:"Requests per second per domain (0 disables)"`
	UserAgent   string        `name:"user-agent" env:"LINKPREVIEW_USER_AGENT" default:"${user_agent}" help:"User-Agent header for HTTP fetches"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show previews of this URL"`
	Type   string `help:"Only show previews of this og:type"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of previews"`
	Format string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Preview ID"`
}

// TypesCmd is the "types" subcommand.
type TypesCmd struct{}
