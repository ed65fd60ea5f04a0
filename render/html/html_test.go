package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() render.Page {
	return render.Page{
		Title: "IRC log of #zope for Sunday, 2005-01-09",
		Prev:  render.Link{URL: "#zope.2005-01-08.log.html", Title: "« Saturday, 2005-01-08"},
		Index: render.Link{URL: "index.html", Title: "Index"},
		Next:  render.Link{URL: "#zope.2005-01-10.log.html", Title: "Monday, 2005-01-10 »"},
	}
}

func renderAll(t *testing.T, v Variant, page render.Page) string {
	t.Helper()
	var buf bytes.Buffer
	r := New(&buf, v, render.DefaultColours())
	require.NoError(t, r.Head(page))
	require.NoError(t, r.NickText("12:04", "mg", "hello &amp; welcome", "#407a40"))
	require.NoError(t, r.ServerMessage("12:05", core.KindJoin, "*** alice has joined #zope"))
	require.NoError(t, r.ServerMessage("", core.KindOther, "noise"))
	require.NoError(t, r.Foot())
	return buf.String()
}

func TestLookup(t *testing.T) {
	s, err := Lookup("xhtmltable")
	require.NoError(t, err)
	assert.Equal(t, XHTMLTable, s.Variant)

	_, err = Lookup("fancy")
	assert.ErrorIs(t, err, render.ErrUnknownStyle)
}

func TestLegacyStyles(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		want    []string
	}{
		{
			name:    "simplett",
			variant: SimpleText,
			want: []string{
				"&lt;mg&gt; hello &amp; welcome<br>",
				`<font color="#009900">*** alice has joined #zope</font><br>`,
			},
		},
		{
			name:    "tt",
			variant: Text,
			want: []string{
				`<font color="#407a40">&lt;mg&gt;</font> <font color="#000000">hello &amp; welcome</font><br>`,
			},
		},
		{
			name:    "simpletable",
			variant: SimpleTable,
			want: []string{
				"<table cellspacing=3 cellpadding=2 border=0>",
				`<tr bgcolor="#eeeeee"><th><font color="#407a40"><tt>mg</tt></font></th><td width="100%"><tt>hello &amp; welcome</tt></td></tr>`,
				`<tr><td colspan=2><tt><font color="#009900">*** alice has joined #zope</font></tt></td></tr>`,
				"</table>",
			},
		},
		{
			name:    "table",
			variant: Table,
			want: []string{
				`<tr><th bgcolor="#407a40"><font color="#ffffff"><tt>mg</tt></font></th>`,
				`<td width="100%" bgcolor="#eeeeee"><tt><font color="#407a40">hello &amp; welcome</font></tt></td></tr>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderAll(t, tt.variant, testPage())
			assert.Contains(t, out, "<!DOCTYPE HTML PUBLIC")
			assert.Contains(t, out, "<title>IRC log of #zope for Sunday, 2005-01-09</title>")
			assert.Contains(t, out, "charset=UTF-8")
			assert.Contains(t, out, "</tt></body></html>")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestXHTMLTable(t *testing.T) {
	out := renderAll(t, XHTMLTable, testPage())

	t.Run("document", func(t *testing.T) {
		assert.Contains(t, out, "XHTML 1.0 Strict")
		assert.Contains(t, out, `<link rel="stylesheet" href="irclog.css" />`)
		assert.Contains(t, out, "<h1>IRC log of #zope for Sunday, 2005-01-09</h1>")
		assert.Contains(t, out, `<table class="irclog">`)
		assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</html>"))
	})

	t.Run("navigation", func(t *testing.T) {
		assert.Contains(t, out, `<a href="%23zope.2005-01-08.log.html">« Saturday, 2005-01-08</a>`)
		assert.Contains(t, out, `<a href="index.html">Index</a>`)
		assert.Contains(t, out, `<a href="%23zope.2005-01-10.log.html">Monday, 2005-01-10 »</a>`)
		assert.Equal(t, 2, strings.Count(out, `class="navigation"`), "nav at top and bottom")
	})

	t.Run("comment row", func(t *testing.T) {
		assert.Contains(t, out, `<tr id="t12:04"><th class="nick" style="background: #407a40">mg</th>`)
		assert.Contains(t, out, `<td class="text" style="color: #407a40">hello &amp; welcome</td>`)
		assert.Contains(t, out, `<a href="#t12:04" class="time">12:04</a>`)
	})

	t.Run("server rows", func(t *testing.T) {
		assert.Contains(t, out, `<tr id="t12:05"><td class="join" colspan="2">*** alice has joined #zope</td>`)
		assert.Contains(t, out, `<tr><td class="other" colspan="2">noise</td><td class="time"></td></tr>`)
	})
}

func TestXHTML(t *testing.T) {
	out := renderAll(t, XHTML, render.Page{Title: "log"})

	assert.Contains(t, out, `<p id="t12:04" class="comment"><a href="#t12:04" class="time">12:04</a> <span class="nick" style="color: #407a40">&lt;mg&gt;</span> <span class="text">hello &amp; welcome</span></p>`)
	assert.Contains(t, out, `<p class="other">noise</p>`)
	assert.NotContains(t, out, `class="navigation"`, "no links, no nav block")
	assert.NotContains(t, out, "<table")
}

func TestSearchBox(t *testing.T) {
	page := render.Page{Title: "log", SearchBox: true}
	out := renderAll(t, XHTMLTable, page)
	assert.Contains(t, out, `<form action="search" method="get">`)

	page.SearchBox = false
	out = renderAll(t, XHTMLTable, page)
	assert.NotContains(t, out, "<form")
}

func TestSearchBoxLegacy(t *testing.T) {
	for _, v := range []Variant{SimpleText, Text, SimpleTable, Table} {
		out := renderAll(t, v, render.Page{Title: "log", SearchBox: true})
		assert.Contains(t, out, `<form action="search" method="get">`, v)
		assert.NotContains(t, out, "/>", v)

		out = renderAll(t, v, render.Page{Title: "log"})
		assert.NotContains(t, out, "<form", v)
	}
}

func TestTitleEscaped(t *testing.T) {
	out := renderAll(t, XHTMLTable, render.Page{Title: "<script>"})
	assert.Contains(t, out, "<title>&lt;script&gt;</title>")
	assert.NotContains(t, out, "<title><script>")
}

func TestDuplicateAnchors(t *testing.T) {
	var buf bytes.Buffer
	r := NewXHTMLTable(&buf)
	require.NoError(t, r.Head(render.Page{Title: "x"}))
	require.NoError(t, r.NickText("12:00", "a", "one", "#000000"))
	require.NoError(t, r.NickText("12:00", "a", "two", "#000000"))
	require.NoError(t, r.NickText("12:00", "a", "three", "#000000"))
	require.NoError(t, r.Foot())

	out := buf.String()
	assert.Contains(t, out, `id="t12:00"`)
	assert.Contains(t, out, `id="t12:00-1"`)
	assert.Contains(t, out, `id="t12:00-2"`)
}

func TestCharset(t *testing.T) {
	out := renderAll(t, SimpleText, render.Page{Title: "x", Charset: "iso-8859-1"})
	assert.Contains(t, out, "charset=iso-8859-1")
}

func TestStylesheet(t *testing.T) {
	assert.Contains(t, string(Stylesheet), "table.irclog")
}
