package handler

import (
	"html/template"
	"net/http"
)

// publicTemplate renders a public list as a bare read-only page.
var publicTemplate = template.Must(template.New("public").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}}</title>
</head>
<body>
<h1>{{.Name}}</h1>
<ul>
{{range .Items}}<li>{{.Name}}{{if .Amount}} ({{.Amount}}){{end}}</li>
{{end}}</ul>
</body>
</html>
`))

// PublicView renders the items of a public list without authentication.
// A private list is reported as missing: the response never reveals
// whether a list exists behind an id.
func (h *ListHandler) PublicView(w http.ResponseWriter, r *http.Request) {
	id, err := parseListParam(r)
	if err != nil {
		http.Error(w, "List not found", http.StatusNotFound)
		return
	}

	list, err := h.lists.GetByID(id)
	if err != nil {
		h.logger.Error("public view", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if list == nil || !list.Public {
		http.Error(w, "List not found", http.StatusNotFound)
		return
	}

	items, err := h.lists.Items(id)
	if err != nil {
		h.logger.Error("public view items", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	type itemView struct {
		Name   string
		Amount string
	}
	view := struct {
		Name  string
		Items []itemView
	}{Name: list.Name}
	for _, item := range items {
		iv := itemView{Name: item.Name}
		if item.Amount != nil {
			iv.Amount = *item.Amount
		}
		view.Items = append(view.Items, iv)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := publicTemplate.Execute(w, view); err != nil {
		h.logger.Error("render public view", "error", err)
	}
}
