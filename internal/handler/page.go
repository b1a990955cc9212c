package handler

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strconv"

	"whatshouldiread/internal/agent/prompt"
	"whatshouldiread/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// PageData is rendered by pageTemplate
type PageData struct {
	Tastes  string
	Genres  string
	Warning string
	Error   string
	Result  *model.RecommendationResult
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"coverSrc":       coverSrc,
	"formatRating":   formatRating,
	"coverNotFound":  func() string { return prompt.CoverNotFoundText },
	"tastesMaxChars": func() int { return MaxTastesLength },
}).Parse(pageHTML))

// coverSrc embeds cover bytes as a data URI
func coverSrc(md model.BookMetadata) template.URL {
	contentType := md.CoverContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(md.CoverImage))
}

func formatRating(r *float64) string {
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

// HandleIndex renders the empty form
func (h *Handler) HandleIndex(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{Template: pageTemplate, Name: "page", Data: PageData{}})
}

// HandleSubmit renders the form together with the recommendations
func (h *Handler) HandleSubmit(c *gin.Context) {
	data := PageData{
		Tastes: c.PostForm("tastes"),
		Genres: c.PostForm("genres"),
	}

	if len(data.Tastes) > MaxTastesLength || len(data.Genres) > MaxGenresLength {
		data.Error = "Your description is too long. Please shorten it and try again."
		c.Render(http.StatusBadRequest, render.HTML{Template: pageTemplate, Name: "page", Data: data})
		return
	}

	if h.service == nil {
		data.Error = "AI service is not available"
		c.Render(http.StatusServiceUnavailable, render.HTML{Template: pageTemplate, Name: "page", Data: data})
		return
	}

	result, err := h.recommend(c, model.RecommendationRequest{Tastes: data.Tastes, Genres: data.Genres})
	if err != nil {
		status, code, message := classifyError(err)
		if code == "EMPTY_TASTES" {
			data.Warning = message
		} else {
			data.Error = message
		}
		c.Render(status, render.HTML{Template: pageTemplate, Name: "page", Data: data})
		return
	}

	data.Result = result
	c.Render(http.StatusOK, render.HTML{Template: pageTemplate, Name: "page", Data: data})
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>What Should I Read?</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
textarea, input[type=text] { width: 100%; box-sizing: border-box; }
textarea { min-height: 8rem; }
.warning { background: #fff4ce; padding: .75rem; }
.error { background: #fde7e9; padding: .75rem; }
.rec { display: grid; grid-template-columns: 1fr 3fr; gap: 1rem; }
.cover img { width: 100px; }
</style>
</head>
<body>
<h1>What Should I Read?</h1>
<h3>Tell us about your reading tastes</h3>
<form method="post" action="/">
<label for="tastes">Share your favorite books, genres you enjoy, and what you're looking for in your next read.</label>
<textarea id="tastes" name="tastes" maxlength="{{tastesMaxChars}}" placeholder="For example: I love immersive worlds like those in magical realism, classics with a twist, or modern narratives that make me think...">{{.Tastes}}</textarea>
<label for="genres">Preferred genres (optional)</label>
<input type="text" id="genres" name="genres" placeholder="e.g., Fantasy, Mystery, Sci-Fi" value="{{.Genres}}">
<p><button type="submit">Get Book Recommendations</button></p>
</form>
{{- if .Warning}}
<p class="warning">{{.Warning}}</p>
{{- end}}
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
{{- with .Result}}
<h3>Recommendation Details</h3>
{{- if .Preamble}}
<p>{{.Preamble}}</p>
<hr>
{{- end}}
{{- range .Recommendations}}
<div class="rec">
<div class="cover">
{{- if .Metadata.HasCover}}
<img src="{{coverSrc .Metadata}}" alt="Cover of {{.Record.Title}}">
{{- else}}
<span>{{coverNotFound}}</span>
{{- end}}
</div>
<div>
<h2>{{.Record.Title}}</h2>
<p><strong>by {{.Record.Author}}</strong></p>
{{- if .Metadata.HasRating}}
<p>Average Rating: {{formatRating .Metadata.AverageRating}} / 5</p>
{{- end}}
<p>{{.Record.Description}}</p>
</div>
</div>
<hr>
{{- end}}
{{- if .Postamble}}
<p>{{.Postamble}}</p>
{{- end}}
{{- end}}
</body>
</html>
`
