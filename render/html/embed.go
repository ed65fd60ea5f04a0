package html

import (
	"embed"
	"html/template"
	"net/url"
	"strings"
)

//go:embed templates/*.html
var content embed.FS

// Stylesheet is the stock irclog.css shared by the xhtml styles and the
// archive index.
//
//go:embed irclog.css
var Stylesheet []byte

// Generator identifies the program in generated pages.
const Generator = "irclog"

var pageTemplates = template.Must(
	template.New("page").
		Funcs(funcMap()).
		ParseFS(content, "templates/*.html"),
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"generator": func() string { return Generator },
		"charset": func(cs string) string {
			if cs == "" {
				return "UTF-8"
			}
			return cs
		},
		"href": href,
	}
}

// href escapes a relative link so that characters such as '#' in channel
// names survive as part of the path.
func href(link string) string {
	if strings.Contains(link, "://") {
		return link
	}
	return (&url.URL{Path: link}).String()
}
