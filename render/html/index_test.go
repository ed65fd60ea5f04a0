package html

import (
	"bytes"
	"testing"

	"github.com/sonnes/irclog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logFiles(t *testing.T, names ...string) []*core.LogFile {
	t.Helper()
	var files []*core.LogFile
	for _, n := range names {
		f, err := core.NewLogFile(n)
		require.NoError(t, err)
		files = append(files, f)
	}
	return files
}

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	err := RenderIndex(&buf, IndexPage{
		Title:     "IRC logs of #zope",
		SearchBox: true,
		Latest:    "latest.log.html",
		Files:     logFiles(t, "#zope.2005-01-08.log", "#zope.2005-01-09.log"),
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>IRC logs of #zope</title>")
	assert.Contains(t, out, "<h1>IRC logs of #zope</h1>")
	assert.Contains(t, out, `<form action="search" method="get">`)
	assert.Contains(t, out, `<li><a href="latest.log.html">Latest (bookmarkable)</a></li>`)
	assert.Contains(t, out, `<li><a href="%23zope.2005-01-08.log.html">2005-01-08 (Saturday)</a></li>`)
	assert.Contains(t, out, `<li><a href="%23zope.2005-01-09.log.html">2005-01-09 (Sunday)</a></li>`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("2005-01-08")), bytes.Index(buf.Bytes(), []byte("2005-01-09")),
		"files listed in the given order")
}

func TestRenderIndexMinimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderIndex(&buf, IndexPage{Title: "IRC logs"}))
	out := buf.String()

	assert.NotContains(t, out, "<form")
	assert.NotContains(t, out, "Latest")
	assert.NotContains(t, out, `class="intro"`)
}

func TestRenderIndexIntro(t *testing.T) {
	intro, err := Markdown([]byte("Logs of **#zope**.\n\n```go\nfunc main() {}\n```\n\n<script>alert(1)</script>\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderIndex(&buf, IndexPage{Title: "IRC logs", Intro: intro}))
	out := buf.String()

	assert.Contains(t, out, `<div class="intro">`)
	assert.Contains(t, out, "<strong>#zope</strong>")
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=", "code highlighted with inline styles")
	assert.NotContains(t, out, "<script>")
}

func TestRenderChannels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChannels(&buf, "IRC logs", []string{"#zope", "python"}))
	out := buf.String()

	assert.Contains(t, out, `<li><a href="%23zope/">#zope</a></li>`)
	assert.Contains(t, out, `<li><a href="python/">python</a></li>`)
}
