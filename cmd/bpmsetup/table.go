package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bpmsetup/internal/preflight"
	"bpmsetup/internal/provision"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderReportTable(outcome *provision.Outcome) string {
	rows := make([][]string, 0, outcome.Report.Attempted())
	for _, pkg := range outcome.Report.Succeeded {
		rows = append(rows, []string{pkg.Name, "OK", ""})
	}
	for _, pkg := range outcome.Report.Failed {
		rows = append(rows, []string{pkg.Name, "FAILED", pkg.Detail})
	}
	return renderTable([]string{"Package", "Status", "Detail"}, rows)
}

func renderPreflightTable(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "FAIL"
		if result.Passed {
			status = "OK"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return renderTable([]string{"Check", "Status", "Detail"}, rows)
}
