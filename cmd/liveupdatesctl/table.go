package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderTable(w io.Writer, headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if shouldColorize(w) {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgCyan}
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func notificationRows(list []model.Notification) [][]string {
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, []string{
			strconv.Itoa(n.ID),
			n.ChannelID,
			n.Title,
			n.Text,
			n.SubText,
			progressCell(n.Progress),
			strconv.FormatBool(n.Ongoing),
		})
	}
	return rows
}

var notificationHeaders = []string{"ID", "Channel", "Title", "Text", "Sub", "Progress", "Ongoing"}

func progressCell(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p) + "%"
}

func printNotifications(cmd *cobra.Command, list []model.Notification) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(out, notificationHeaders, notificationRows(list)))
}
