// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	markdoll "github.com/0x57e11a/markdoll"
	"github.com/0x57e11a/markdoll/tags"
)

var log *zap.SugaredLogger

func main() {
	app := &cli.App{
		Name:      "markdoll",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "parse and render markdoll documents",
		UsageText: "markdoll convert [options] < input > output",
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "read a markdoll document from stdin, write rendered output to stdout",
				Action: convert,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "emit machine-readable status and diagnostics on stderr"},
					&cli.BoolFlag{Name: "no-status", Usage: "suppress status updates; only final diagnostics are emitted"},
					&cli.BoolFlag{Name: "danger", Usage: "register the danger-zone tag set (requires a danger-tagged build)"},
					&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "run with verbose structured logging"},
					&cli.StringFlag{Name: "target", Value: "html", Usage: "output target to render for"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

type statusUpdate struct {
	Kind   string `json:"kind"`
	Stage  string `json:"stage"`
	Status string `json:"status"`
}

type diagnosticsEnvelope struct {
	Kind        string           `json:"kind"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonLabel struct {
	Primary  bool   `json:"primary"`
	Label    string `json:"label"`
	Location string `json:"location"`
}

type jsonDiagnostic struct {
	Message    string      `json:"message"`
	Code       string      `json:"code"`
	Severity   string      `json:"severity"`
	Help       *string     `json:"help"`
	URL        *string     `json:"url"`
	Labels     []jsonLabel `json:"labels"`
	CauseChain []string    `json:"cause_chain"`
	Rendered   string      `json:"rendered"`
}

func convert(c *cli.Context) error {
	debug := c.Bool("debug")
	jsonMode := c.Bool("json")
	noStatus := c.Bool("no-status")
	danger := c.Bool("danger")
	target := c.String("target")

	var z *zap.Logger
	var err error
	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return cli.Exit(err, 2)
	}
	log = z.Sugar()
	defer log.Sync()

	status := func(stage, st string) {
		if noStatus {
			return
		}
		emitStatus(jsonMode, stage, st)
	}

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return cli.Exit(err, 2)
	}

	reg := markdoll.NewRegistry()
	tags.RegisterStandard(reg)
	registerDangerIfRequested(reg, danger, log)

	status("parse", "working")
	ast, diags := markdoll.Parse(reg, string(src), "<stdin>", target, false)
	if hasErrors(diags) {
		status("parse", "failure")
		status("emit", "failure")
		emitDiagnostics(jsonMode, diags)
		return cli.Exit("", 1)
	}
	status("parse", "success")

	status("emit", "working")
	var out []byte
	sink := &sliceSink{}
	emitDiags := markdoll.RenderTo(reg, ast, target, sink)
	diags = append(diags, emitDiags...)
	out = sink.bytes()

	if hasErrors(emitDiags) {
		status("emit", "failure")
		emitDiagnostics(jsonMode, diags)
		return cli.Exit("", 1)
	}

	os.Stdout.Write(out)
	status("emit", "written")
	emitDiagnostics(jsonMode, diags)
	return nil
}

// registerDangerIfRequested registers the danger-zone tags when both the
// binary was built with the `danger` build tag and --danger was passed.
// A non-danger build simply has no such tags to register, so there it
// only logs a warning; see tags/danger.go and tags/danger_stub.go.
func registerDangerIfRequested(reg *markdoll.Registry, requested bool, log *zap.SugaredLogger) {
	if !requested {
		return
	}
	tags.RegisterDangerIfAvailable(reg, log)
}

func hasErrors(diags []markdoll.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == markdoll.SeverityError {
			return true
		}
	}
	return false
}

func emitStatus(jsonMode bool, stage, status string) {
	if jsonMode {
		b, _ := json.Marshal(statusUpdate{Kind: "status-update", Stage: stage, Status: status})
		fmt.Fprintln(os.Stderr, string(b))
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, status)
}

var (
	styleAdvice  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func emitDiagnostics(jsonMode bool, diags []markdoll.Diagnostic) {
	if jsonMode {
		entries := make([]jsonDiagnostic, 0, len(diags))
		for _, d := range diags {
			entries = append(entries, toJSONDiagnostic(d))
		}
		b, _ := json.Marshal(diagnosticsEnvelope{Kind: "diagnostics", Diagnostics: entries})
		fmt.Fprintln(os.Stderr, string(b))
		return
	}
	for _, d := range diags {
		style := styleAdvice
		switch d.Severity {
		case markdoll.SeverityWarning:
			style = styleWarning
		case markdoll.SeverityError:
			style = styleError
		}
		fmt.Fprintln(os.Stderr, style.Render(d.Rendered()))
	}
}

func toJSONDiagnostic(d markdoll.Diagnostic) jsonDiagnostic {
	labels := make([]jsonLabel, 0, len(d.Labels))
	for _, l := range d.Labels {
		labels = append(labels, jsonLabel{
			Primary:  l.Primary,
			Label:    l.Text,
			Location: fmt.Sprintf("%s:%s", l.Span.Source, l.Span.Start),
		})
	}
	var help, url *string
	if d.Help != "" {
		help = &d.Help
	}
	if d.URL != "" {
		url = &d.URL
	}
	return jsonDiagnostic{
		Message:    d.Message,
		Code:       d.Code,
		Severity:   d.Severity.String(),
		Help:       help,
		URL:        url,
		Labels:     labels,
		CauseChain: d.CauseChain,
		Rendered:   d.Rendered(),
	}
}

// sliceSink is an in-memory io.Writer so emission can be fully rendered
// (and its diagnostics known) before anything is written to stdout; the
// "written" status is only meaningful once every byte is actually
// flushed, per spec §6.
type sliceSink struct {
	buf []byte
}

func (s *sliceSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *sliceSink) bytes() []byte { return s.buf }
