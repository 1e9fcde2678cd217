package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/draft"
	"github.com/MrSnakeDoc/apihub/internal/present"
	"github.com/MrSnakeDoc/apihub/internal/query"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	titleColor   = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgCyan)
	methodColor  = color.New(color.FgMagenta, color.Bold)
	urlColor     = color.New(color.FgBlue)
	chipColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// clean escapes control characters so store data cannot drive the terminal.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\x1b':
			b.WriteString(`\x1b`)
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func printSuccess(w io.Writer, msg string) {
	successColor.Fprintf(w, "✓ %s\n", msg)
}

func printError(w io.Writer, msg string) {
	errorColor.Fprintf(w, "✗ %s\n", msg)
}

func printResult(w io.Writer, res query.Result, total int) {
	for _, f := range res.ActiveFilters {
		chipColor.Fprintf(w, "[%s] ", clean(f))
	}
	if len(res.ActiveFilters) > 0 {
		fmt.Fprintln(w)
	}

	if len(res.Listings) == 0 {
		dimColor.Fprintln(w, "No APIs match the current filters")
		return
	}

	for _, l := range res.Listings {
		titleColor.Fprintf(w, "%-32s ", clean(l.Name))
		dimColor.Fprintf(w, "%-8s ", clean(l.Version))
		labelColor.Fprintf(w, "%-14s ", clean(l.Category.Name))
		fmt.Fprintf(w, "%7s calls  %s  ", query.FormatCompact(l.Stats.TotalCalls), present.FormatUptime(l.Stats.Uptime))
		dimColor.Fprintf(w, "id=%s\n", clean(l.ID))
	}
	dimColor.Fprintf(w, "\n%d of %d APIs\n", len(res.Listings), total)
}

func printDetail(w io.Writer, d present.Detail) {
	l := d.Listing
	titleColor.Fprintf(w, "%s ", clean(l.Name))
	dimColor.Fprintf(w, "%s\n", clean(l.Version))
	fmt.Fprintln(w, clean(l.Description))
	fmt.Fprintln(w, strings.Repeat("-", 40))

	field := func(label, value string) {
		labelColor.Fprintf(w, "%-14s", label)
		fmt.Fprintln(w, clean(value))
	}
	field("Owner", l.Owner)
	field("Category", l.Category.Name)
	field("Tags", strings.Join(l.Tags, ", "))
	field("Auth", d.AuthLabel)
	if l.Auth.Description != "" {
		field("", l.Auth.Description)
	}
	field("Created", d.CreatedAt)
	field("Updated", d.UpdatedAt)
	field("Base URL", l.BaseURL)
	field("Sandbox URL", d.Copy.SandboxURL)
	if l.DocumentationURL != "" {
		field("Docs", l.DocumentationURL)
	}
	fmt.Fprintln(w)
	field("Calls", d.Stats.TotalCalls+" ("+d.Stats.TotalCallsCompact+")")
	field("Last week", d.Stats.LastWeekCalls)
	field("Uptime", d.Stats.Uptime)
	field("Latency", d.Stats.ResponseTime)

	switch d.Tabs.Active {
	case present.TabEndpoints:
		fmt.Fprintln(w)
		printEndpoints(w, d.Copy.Endpoints)
	case present.TabExamples:
		fmt.Fprintln(w)
		printExamples(w, d)
	}
}

func printEndpoints(w io.Writer, eps []present.EndpointCopy) {
	if len(eps) == 0 {
		dimColor.Fprintln(w, "No endpoints documented")
		return
	}
	for _, ep := range eps {
		methodColor.Fprintf(w, "%-7s ", ep.Method)
		urlColor.Fprintf(w, "%s\n", clean(ep.Path))
		if ep.Description != "" {
			dimColor.Fprintf(w, "        %s\n", clean(ep.Description))
		}
	}
}

func printExamples(w io.Writer, d present.Detail) {
	section := func(name, body string) {
		if body == "" {
			return
		}
		labelColor.Fprintln(w, name)
		fmt.Fprintln(w, clean(body))
		fmt.Fprintln(w)
	}
	section("cURL", d.Copy.Curl)
	if d.Tabs.ShowFullSpec {
		section("JavaScript", d.Copy.JavaScript)
		section("Python", d.Copy.Python)
	}
	for _, h := range d.Hints {
		chipColor.Fprintf(w, "• %s ", clean(h.Name))
		dimColor.Fprintf(w, "(%s)\n", clean(h.Note))
	}
}

func printMetrics(w io.Writer, m domain.Metrics) {
	field := func(label, value string) {
		labelColor.Fprintf(w, "%-22s", label)
		fmt.Fprintln(w, value)
	}
	field("APIs", strconv.Itoa(m.TotalAPIs))
	field("Calls", query.FormatCompact(m.TotalAPICalls))
	field("New last month", strconv.Itoa(m.NewAPIsLastMonth))
	field("Active users", query.FormatCompact(m.ActiveUsers))

	if len(m.PopularCategories) > 0 {
		fmt.Fprintln(w)
		titleColor.Fprintln(w, "Popular categories")
		for _, c := range m.PopularCategories {
			fmt.Fprintf(w, "  %-16s %5.1f%% %s\n", clean(c.Name), c.Percentage, strings.Repeat("█", int(c.Percentage/4)))
		}
	}
	if len(m.APICallsOverTime) > 0 {
		fmt.Fprintln(w)
		titleColor.Fprintln(w, "Calls over time")
		for _, p := range m.APICallsOverTime {
			fmt.Fprintf(w, "  %-6s %8s\n", clean(p.Month), query.FormatCompact(p.Calls))
		}
	}
	if len(m.TopAPIs) > 0 {
		fmt.Fprintln(w)
		titleColor.Fprintln(w, "Top APIs")
		for i, t := range m.TopAPIs {
			dimColor.Fprintf(w, "  %d. ", i+1)
			fmt.Fprintf(w, "%-28s %8s  %s\n", clean(t.Name), query.FormatCompact(t.Calls), present.FormatUptime(t.Uptime))
		}
	}
}

func printValidation(w io.Writer, verr *draft.ValidationError) {
	printError(w, "the listing was not submitted")

	idx := make([]int, 0, len(verr.Endpoints))
	for i := range verr.Endpoints {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		fmt.Fprintf(w, "  endpoint #%d: missing %s\n", i+1, strings.Join(verr.Endpoints[i], " and "))
	}

	names := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  --%s: %s\n", flagFor(name), verr.Fields[name])
	}
}

// flagFor maps a payload field name to the `add` flag that sets it.
func flagFor(field string) string {
	switch field {
	case "category_id":
		return "category"
	case "auth_type":
		return "auth"
	case "auth_description":
		return "auth-description"
	default:
		return strings.ReplaceAll(field, "_", "-")
	}
}
