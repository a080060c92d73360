// Package render writes defaults and effective project metadata as JSON,
// YAML or HCL, to a stream or to one file per project.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/renameio/v2"
	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/consumer"
	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/hcl"
	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/vk/orgdefaults/internal/session"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatHCL:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q: must be one of json, yaml, hcl", s)
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	return "." + string(f)
}

// projectView is the serialized shape of one configured project.
type projectView struct {
	Name      string            `json:"name" yaml:"name"`
	Source    string            `json:"source" yaml:"source"`
	Effective metadata.Document `json:"effective" yaml:"effective"`
}

type reportView struct {
	SessionID string            `json:"session_id" yaml:"session_id"`
	Settings  string            `json:"settings" yaml:"settings"`
	Defaults  metadata.Document `json:"defaults" yaml:"defaults"`
	Projects  []projectView     `json:"projects" yaml:"projects"`
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q cannot encode %T", f, v)
}

// Defaults writes the registered defaults.
func Defaults(w io.Writer, f Format, doc metadata.Document) error {
	if f == FormatHCL {
		_, err := w.Write(hcl.RenderSettings(doc))
		return err
	}
	return encode(w, f, doc)
}

// Project writes the effective metadata of one project.
func Project(w io.Writer, f Format, r session.Result) error {
	if f == FormatHCL {
		_, err := w.Write(hcl.RenderProject(r.Project.Name, r.Effective))
		return err
	}
	return encode(w, f, projectView{Name: r.Project.Name, Source: r.Project.Source, Effective: r.Effective})
}

// Report writes a whole session. HCL output is the defaults block followed
// by one project block per project.
func Report(w io.Writer, f Format, rep *session.Report) error {
	if f == FormatHCL {
		var buf bytes.Buffer
		buf.Write(hcl.RenderSettings(rep.Defaults))
		for _, r := range rep.Projects {
			buf.WriteByte('\n')
			buf.Write(hcl.RenderProject(r.Project.Name, r.Effective))
		}
		_, err := w.Write(buf.Bytes())
		return err
	}

	view := reportView{
		SessionID: rep.SessionID,
		Settings:  rep.Settings,
		Defaults:  rep.Defaults,
		Projects:  make([]projectView, 0, len(rep.Projects)),
	}
	for _, r := range rep.Projects {
		view.Projects = append(view.Projects, projectView{Name: r.Project.Name, Source: r.Project.Source, Effective: r.Effective})
	}
	return encode(w, f, view)
}

// WriteFiles writes one <project>.<ext> file per result into dir, creating
// dir if needed. Each file is replaced atomically. It returns the paths
// written.
func WriteFiles(ctx context.Context, dir string, f Format, results []session.Result) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(results))
	for _, r := range results {
		if err := config.ValidateProjectName(r.Project.Name); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, r.Project.Name+f.Ext())
		if err := writeFile(ctx, path, func(w io.Writer) error { return Project(w, f, r) }); err != nil {
			return paths, err
		}
		logger.Debug("Wrote effective metadata.", "project", r.Project.Name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(ctx context.Context, path string, write func(io.Writer) error) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			ctxlog.FromContext(ctx).Debug("Cleanup of pending file failed.", "path", path, "error", err)
		}
	}()

	if err := write(pending); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

// Provenance writes a field / origin / value table for one project.
func Provenance(w io.Writer, r session.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FIELD\tORIGIN\tVALUE\n")
	for _, field := range metadata.AllFields() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", field, originOf(r.Provenance, field), summarize(r.Effective, field))
	}
	return tw.Flush()
}

func originOf(p consumer.Provenance, f metadata.Field) consumer.Origin {
	if o, ok := p[f]; ok {
		return o
	}
	return consumer.OriginUnset
}

// summarize renders a field value on one line.
func summarize(doc metadata.Document, f metadata.Field) string {
	if f.IsScalar() {
		v, _ := doc.Get(f)
		return v
	}
	switch f {
	case metadata.FieldLicenses:
		return describeLicenses(doc.Licenses)
	case metadata.FieldDevelopers:
		ids := make([]string, 0, len(doc.Developers))
		for _, d := range doc.Developers {
			ids = append(ids, d.ID)
		}
		return fmt.Sprint(ids)
	case metadata.FieldMailingLists:
		names := make([]string, 0, len(doc.MailingLists))
		for _, m := range doc.MailingLists {
			names = append(names, m.Name)
		}
		return fmt.Sprint(names)
	case metadata.FieldOrganization:
		if o := doc.Organization; o != nil {
			return o.Name
		}
	case metadata.FieldIssueManagement:
		if im := doc.IssueManagement; im != nil {
			return im.URL
		}
	case metadata.FieldScm:
		if s := doc.Scm; s != nil {
			return s.URL
		}
	}
	return ""
}

// describeLicenses lists the license ids, adding the display name and URL of
// well-known ones.
func describeLicenses(licenses []metadata.License) string {
	parts := make([]string, 0, len(licenses))
	for _, l := range licenses {
		if info, ok := l.Info(); ok {
			parts = append(parts, fmt.Sprintf("%s (%s, %s)", l.Type, info.Name, info.URL))
			continue
		}
		parts = append(parts, l.Type)
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

// Findings writes validation findings grouped by source, sorted by source
// name. It returns the total number of findings.
func Findings(w io.Writer, bySource map[string][]metadata.Finding) (int, error) {
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	total := 0
	for _, s := range sources {
		for _, f := range bySource[s] {
			if _, err := fmt.Fprintf(w, "%s: %s\n", s, f); err != nil {
				return total, err
			}
			total++
		}
	}
	if total == 0 {
		_, err := fmt.Fprintln(w, "No problems found.")
		return 0, err
	}
	return total, nil
}
