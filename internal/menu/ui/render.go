package ui

import (
	"html/template"
	"io"
	"strconv"

	"github.com/beanboard/menu-service/internal/menu"
)

// EmptyPlaceholder is the single row shown when the menu has no items.
const EmptyPlaceholder = "no items"

var funcs = template.FuncMap{
	"price": func(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) },
}

const layout = `{{define "head"}}<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Menu</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    table { border-collapse: collapse; }
    td, th { border: 1px solid #ccc; padding: .3rem .6rem; }
    .notice { background: #fde68a; padding: .5rem; }
    .error { color: #b91c1c; }
  </style>
</head>
<body>
<h1>Menu</h1>
{{end}}
{{define "foot"}}</body>
</html>
{{end}}`

var pageTmpl = template.Must(template.New("page").Funcs(funcs).Parse(layout + `{{template "head"}}
{{- if eq .Phase.String "loading"}}
<p>Loading...</p>
{{- else if eq .Phase.String "error"}}
<p class="error">{{.Err}}</p>
<p><a href="/">Retry</a></p>
{{- else}}
{{- if .Notice}}
<div class="notice" role="alert">{{.Notice}}
  <form method="post" action="/notice/dismiss"><button type="submit">OK</button></form>
</div>
{{- end}}
{{- if .Err}}
<p class="error">{{.Err}}</p>
{{- end}}
<form method="post" action="/items">
  <input name="menuName" placeholder="Name" value="{{.Draft.Name}}">
  <input name="menuPrice" type="number" step="any" placeholder="Price" value="{{if .Draft.Price}}{{price .Draft.Price}}{{end}}">
  <input name="menuCategory" placeholder="Category" value="{{.Draft.Category}}">
  <label><input name="menuAvailable" type="checkbox"{{if .Draft.Available}} checked{{end}}> Available</label>
  <button type="submit">Add</button>
</form>
<table>
  <thead><tr><th>Name</th><th>Price</th><th>Category</th><th>Available</th><th></th></tr></thead>
  <tbody>
  {{- range .Items}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{price .Price}}</td>
      <td>{{.Category}}</td>
      <td>
        <form method="post" action="/items/{{.ID}}/toggle">
          <button type="submit">{{if .Available}}yes{{else}}no{{end}}</button>
        </form>
      </td>
      <td><a href="/items/{{.ID}}/edit">edit</a> <a href="/items/{{.ID}}/delete">delete</a></td>
    </tr>
  {{- else}}
    <tr><td colspan="5">` + EmptyPlaceholder + `</td></tr>
  {{- end}}
  </tbody>
</table>
{{- with .Editing}}
<div class="editor">
  <h2>Edit {{.Name}}</h2>
  <form method="post" action="/items/{{.ID}}/edit">
    <input name="menuName" value="{{.Name}}">
    <input name="menuPrice" type="number" step="any" value="{{price .Price}}">
    <input name="menuCategory" value="{{.Category}}">
    <label><input name="menuAvailable" type="checkbox"{{if .Available}} checked{{end}}> Available</label>
    <button type="submit">Save</button>
  </form>
  <form method="post" action="/edit/cancel"><button type="submit">Cancel</button></form>
</div>
{{- end}}
{{- end}}
{{template "foot"}}`))

var confirmTmpl = template.Must(template.New("confirm").Funcs(funcs).Parse(layout + `{{template "head"}}
<p>{{.Prompt}}</p>
<form method="post" action="/items/{{.Item.ID}}/delete">
  <button type="submit" name="confirm" value="yes">Yes</button>
  <button type="submit" name="confirm" value="no">No</button>
</form>
{{template "foot"}}`))

// Render writes the menu page for s.
func Render(w io.Writer, s State) error {
	return pageTmpl.Execute(w, s)
}

// RenderConfirm writes the yes/no page shown before deleting item.
func RenderConfirm(w io.Writer, item menu.MenuItem) error {
	return confirmTmpl.Execute(w, struct {
		Prompt string
		Item   menu.MenuItem
	}{Prompt: DeletePrompt(item), Item: item})
}
