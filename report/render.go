package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// numericColumns lists the table columns that are right-aligned.
var numericColumns = map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true}

// Render writes the totals followed by one table row per cluster.
func (s *Summary) Render(w io.Writer) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("#", "Name", "Points", "Matched", "Accuracy", "Purity", "Centroid", "H3").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for i, c := range s.Clusters {
		t.Row(
			strconv.Itoa(i),
			c.Name,
			strconv.Itoa(c.Points),
			strconv.Itoa(c.Matched),
			percent(c.Accuracy),
			strconv.Itoa(c.Purity),
			fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng),
			c.Cell.String(),
		)
	}

	totals := fmt.Sprintf("%d clusters, %d points, %d matched, accuracy %s, average purity %.2f",
		len(s.Clusters), s.Points, s.Matched, percent(s.Accuracy), s.AveragePurity)

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		titleStyle.Render("Clustering results"), mutedStyle.Render(totals), t.String())
	return err
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
