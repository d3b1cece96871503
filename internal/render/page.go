package render

import (
	"html/template"
	"io"

	"github.com/senyabanana/records-browser/internal/models"
)

// PageSizes - размеры страницы, доступные в селекторе.
var PageSizes = []int{10, 25, 50, 100}

// PageView - всё, что нужно для отрисовки HTML-страницы.
type PageView struct {
	Filters      models.Filters
	PageSize     int
	PageSizes    []int
	Status       string
	Summary      string
	PageInfo     string
	PrevPage     int
	NextPage     int
	Rows         []Row
	EmptyMessage string
	PrevDisabled bool
	NextDisabled bool
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Contrataciones abiertas</title>
</head>
<body>
<form id="filters" method="get" action="/">
  <input id="unspsc" name="unspsc" placeholder="Código UNSPSC" value="{{.Filters.Classification}}">
  <input id="department" name="department" placeholder="Departamento" value="{{.Filters.Department}}">
  <input id="buyer" name="buyer" placeholder="Entidad" value="{{.Filters.Buyer}}">
  <input id="description" name="description" placeholder="Descripción" value="{{.Filters.Description}}">
  <select id="pageSize" name="page_size">
    {{- range .PageSizes}}
    <option value="{{.}}"{{if eq . $.PageSize}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
  <button type="submit" name="action" value="apply">Buscar</button>
  <button type="submit" name="action" value="page_size">Cambiar tamaño</button>
  <button type="submit" name="action" value="clear" id="clearFilters">Limpiar filtros</button>
</form>
<p id="status">{{.Status}}</p>
<p id="summary">{{.Summary}}</p>
<table id="results">
  <thead>
    <tr><th>Proceso</th><th>Entidad</th><th>Departamento</th><th>UNSPSC</th><th>Monto</th><th>Fechas</th></tr>
  </thead>
  <tbody>
  {{- if .EmptyMessage}}
    <tr><td colspan="6">{{.EmptyMessage}}</td></tr>
  {{- else}}
  {{- range .Rows}}
    <tr>
      <td class="title-cell">
        {{- if .URL}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a>{{else}}<a>{{.Title}}</a>{{end}}
        {{- if .Identifier}}<div class="meta">{{.Identifier}}</div>{{end}}
      </td>
      <td>{{.Buyers}}</td>
      <td>{{.Departments}}</td>
      <td>{{if .Codes}}<div class="unspsc-list">{{range .Codes}}<span class="badge">{{.}}</span>{{end}}</div>{{else}}{{.CodesText}}{{end}}</td>
      <td><span class="amount">{{.Amount}}</span></td>
      <td><div><strong>Publicado:</strong> {{.Published}}</div><div><strong>Actualizado:</strong> {{.Updated}}</div></td>
    </tr>
  {{- end}}
  {{- end}}
  </tbody>
</table>
<nav>
  <form method="get" action="/">
    <input type="hidden" name="action" value="page">
    <button id="prevPage" type="submit" name="page" value="{{.PrevPage}}"{{if .PrevDisabled}} disabled{{end}}>Anterior</button>
    <span id="pageInfo">{{.PageInfo}}</span>
    <button id="nextPage" type="submit" name="page" value="{{.NextPage}}"{{if .NextDisabled}} disabled{{end}}>Siguiente</button>
  </form>
</nav>
</body>
</html>
`))

// WritePage отрисовывает HTML-страницу в w.
func WritePage(w io.Writer, view PageView) error {
	if view.PageSizes == nil {
		view.PageSizes = PageSizes
	}
	return pageTemplate.Execute(w, view)
}
