package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// CompletionMessage is the last line of a successful bring-up.
const CompletionMessage = "Cluster setup complete."

var summaryHeaders = []string{"NODE", "ID", "HOST", "PRIVATE IP", "STATE", "ROLE"}

// RenderSummary writes the node table of a finished bring-up followed by
// the completion line. Styles are applied only when tty is true.
func RenderSummary(w io.Writer, cluster string, instances []ec2.Instance, seeds []string, tty bool) error {
	rows := make([][]string, 0, len(instances))
	seedRows := make(map[int]bool)
	for i, inst := range instances {
		role := "node"
		if slices.Contains(seeds, inst.PrivateIP) {
			role = "seed"
			seedRows[i] = true
		}
		name := inst.Name
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{name, inst.ID, inst.Address(), inst.PrivateIP, string(inst.State), role})
	}

	title := fmt.Sprintf("Cluster %s: %d nodes, seeds %s", cluster, len(instances), strings.Join(seeds, ","))

	t := table.New().Headers(summaryHeaders...).Rows(rows...)
	done := CompletionMessage
	if tty {
		title = titleStyle.Render(title)
		done = successStyle.Render(done)
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case seedRows[row]:
					return seedStyle
				default:
					return cellStyle
				}
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", title, t.String(), done)
	return err
}
