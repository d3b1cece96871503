package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table отрисовывает строки результатов в виде таблицы для терминала.
// Пустой набор строк даёт таблицу с одной строкой emptyMessage.
func Table(rows []Row, emptyMessage string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Proceso", "Entidad", "Departamento", "UNSPSC", "Monto", "Fechas").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if len(rows) == 0 {
		t.Row(emptyMessage, "", "", "", "", "")
		return t.String()
	}

	for _, r := range rows {
		title := r.Title
		if r.Identifier != "" {
			title += "\n" + r.Identifier
		}
		dates := strings.Join([]string{"Publicado: " + r.Published, "Actualizado: " + r.Updated}, "\n")
		t.Row(title, r.Buyers, r.Departments, strings.Join(orPlaceholder(r.Codes), "\n"), r.Amount, dates)
	}
	return t.String()
}

func orPlaceholder(codes []string) []string {
	if len(codes) == 0 {
		return []string{NoClassification}
	}
	return codes
}
