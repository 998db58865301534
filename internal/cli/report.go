package cli

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/toyz/serialgen/internal/annotations"
	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/registry"
)

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// RenderSummary prints the run counters
func RenderSummary(w io.Writer, result *RunResult) {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Result", "Count"})

	table.Append([]string{"processed", strconv.Itoa(result.Processed)})
	table.Append([]string{"already present", strconv.Itoa(result.AlreadyPresent)})
	table.Append([]string{"skipped", strconv.Itoa(result.Skipped)})
	table.Append([]string{"failed", strconv.Itoa(result.Failed)})
	filesLabel := "files changed"
	if result.DryRun {
		filesLabel = "files to change"
	}
	table.Append([]string{filesLabel, strconv.Itoa(len(result.FilesChanged))})

	table.Render()
	fmt.Fprintf(w, "\n%s", buf.String())
}

// RenderOutcomes prints one row per declaration handled in the run
func RenderOutcomes(w io.Writer, result *RunResult, base string) {
	if len(result.Outcomes) == 0 {
		return
	}

	var buf bytes.Buffer
	table := newTable(&buf, []string{"File", "Line", "Kind", "Name", "Outcome", "Detail"})

	for _, outcome := range result.Outcomes {
		table.Append([]string{
			relativePath(base, outcome.File),
			strconv.Itoa(outcome.Line),
			outcome.Subject.String(),
			outcome.Name,
			outcome.Outcome.String(),
			outcome.Detail,
		})
	}

	table.Render()
	fmt.Fprintf(w, "\n%s", buf.String())
}

// MarkerEntry is one annotation marker found in a header
type MarkerEntry struct {
	File   string
	Marker models.Marker
}

// FindAllMarkers lists the class and enum markers of the given headers in file order
func FindAllMarkers(store registry.FileReader, files []string, classMarker string) ([]MarkerEntry, []error) {
	var entries []MarkerEntry
	var errs []error

	for _, file := range files {
		content, err := store.ReadFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		stream := annotations.Classify(models.NewSourceFile(file, content).Lines)
		var found []models.Marker
		found = append(found, annotations.FindMarkersIn(stream, "Serializable", models.SubjectEnum)...)
		found = append(found, annotations.FindMarkersIn(stream, classMarker, models.SubjectClass)...)
		sort.SliceStable(found, func(i, j int) bool { return found[i].Line < found[j].Line })

		for _, marker := range found {
			entries = append(entries, MarkerEntry{File: file, Marker: marker})
		}
	}

	return entries, errs
}

// RenderMarkers prints the marker listing of the list command
func RenderMarkers(w io.Writer, entries []MarkerEntry, base string) {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"File", "Line", "Kind", "Declaration", "State"})

	for _, entry := range entries {
		table.Append([]string{
			relativePath(base, entry.File),
			strconv.Itoa(entry.Marker.Line),
			entry.Marker.Subject.String(),
			entry.Marker.Declaration,
			entry.Marker.Kind.String(),
		})
	}

	table.Render()
	fmt.Fprintf(w, "%s", buf.String())
}

// RenderRules prints the validation rules of the rules command
func RenderRules(w io.Writer, rules *registry.MacroRegistry, base string) {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Rule", "Function", "Strings only", "Source"})

	for _, macro := range rules.Macros() {
		stringOnly := "no"
		if registry.IsStringOnly(macro.Function) {
			stringOnly = "yes"
		}
		table.Append([]string{
			macro.Rule,
			macro.Function,
			stringOnly,
			fmt.Sprintf("%s:%d", relativePath(base, macro.Source), macro.Line),
		})
	}

	table.Render()
	fmt.Fprintf(w, "%s", buf.String())
}

func relativePath(base, path string) string {
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil && !startsWithParent(rel) {
		return filepath.ToSlash(rel)
	}
	return path
}

func startsWithParent(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
