package gateway

import (
	"html/template"
	"net/http"

	"github.com/flemzord/peerlens/internal/entity"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>peerlens</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
form { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
input[type=text] { flex: 1; padding: .5rem; font-size: 1rem; }
button { padding: .5rem 1.25rem; font-size: 1rem; cursor: pointer; }
pre { background: #f4f4f4; padding: 1rem; border-radius: 6px; white-space: pre-wrap; }
.error { color: #b00020; }
img.photo { max-width: 160px; border-radius: 8px; margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>peerlens</h1>
<p>Look up a Telegram user, bot, group, or channel by numeric ID or username.</p>
<form method="get" action="/">
<input type="text" name="query" placeholder="@durov or 777000" value="{{.Query}}" autofocus>
<button type="submit">Lookup</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Photo}}<img class="photo" src="{{.Photo}}" alt="profile photo">{{end}}
{{if .Result}}<pre>{{.Result}}</pre>{{end}}
</body>
</html>
`))

type pageData struct {
	Query  string
	Result string
	Photo  string
	Error  string
}

// handlePage returns an http.HandlerFunc for GET /. Without a query it
// renders the bare form; with one it renders the formatted profile
// inline.
func (g *Gateway) handlePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Query: r.URL.Query().Get("query")}

		if data.Query != "" {
			rec, err := g.lookup(r, data.Query)
			if err != nil {
				_, data.Error = classifyError(err)
			} else {
				data.Result = entity.Format(rec)
				data.Photo = rec.PhotoRef
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			g.logger.Error("render page", "error", err)
		}
	}
}
