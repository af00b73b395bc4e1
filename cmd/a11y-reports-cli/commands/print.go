// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func impactColor(impact string) text.Colors {
	switch impact {
	case "critical":
		return text.Colors{text.FgRed, text.Bold}
	case "serious":
		return text.Colors{text.FgRed}
	case "moderate":
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgHiBlack}
	}
}

func printProjects(out io.Writer, projects []dtos.ProjectDTO) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"ID", "Name", "Slug", "Page URL", "Active", "Created"})
	for _, p := range projects {
		active := text.FgGreen.Sprint("yes")
		if !p.IsActive {
			active = text.FgHiBlack.Sprint("archived")
		}
		tw.AppendRow(table.Row{p.ID, p.Name, p.Slug, p.PageURL, active, p.CreatedAt.Format(time.DateOnly)})
	}
	tw.Render()
}

func printViolations(out io.Writer, rows []dtos.ViolationReportRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Rule", "Impact", "Count", "Example URL"})
	for _, r := range rows {
		tw.AppendRow(table.Row{text.WrapText(r.Help, 60), impactColor(r.Impact).Sprint(r.Impact), r.Count, r.URL})
	}
	tw.Render()
}

func printURLPatterns(out io.Writer, rows []dtos.URLPatternReportRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"URL", "Violations"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.URL, r.Count})
	}
	tw.Render()
}

func printUploadResult(out io.Writer, res dtos.UploadResponse) {
	fmt.Fprintln(out, res.Message)
	if len(res.Errors) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Source", "Test", "Error"})
	for _, e := range res.Errors {
		tw.AppendRow(table.Row{e.Source, e.TestName, text.FgRed.Sprint(e.Error)})
	}
	tw.Render()
}

func printScanResults(out io.Writer, scans []dtos.ScanResultDTO) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"ID", "Test", "URL", "Created", "Critical", "Serious", "Moderate", "Minor", "Total"})
	for _, s := range scans {
		c := s.ImpactCounts
		tw.AppendRow(table.Row{s.ID, s.TestName, s.URL, s.Created.Format(time.DateTime), c.Critical, c.Serious, c.Moderate, c.Minor, s.TotalViolations})
	}
	tw.Render()
}

func printScanResultDetails(out io.Writer, scan dtos.ScanResultDetailsDTO) {
	fmt.Fprintf(out, "%s  %s\ncreated %s, %d violation(s)\n", scan.TestName, scan.URL, scan.Created.Format(time.DateTime), scan.TotalViolations)

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Rule", "Impact", "Nodes", "Help"})
	for _, v := range scan.Violations {
		tw.AppendRow(table.Row{v.ID, impactColor(v.Impact).Sprint(v.Impact), len(v.Nodes), text.WrapText(v.Help, 60)})
	}
	tw.Render()
}
