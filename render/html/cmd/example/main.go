// Generates an example page in every HTML style and writes it to stdout.
// Usage: go run ./render/html/cmd/example > example.html
//
// Pass a style name to render just that style as a complete document:
// go run ./render/html/cmd/example xhtml > example.html
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sonnes/irclog/convert"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/render"
	htmlrender "github.com/sonnes/irclog/render/html"
)

const sample = `[09:58] *** mgedmin has joined #zope3-dev
[09:59] <mgedmin> good morning
[10:00] <philiKON> morning! see http://zope.org/Collectors/Zope3-dev/42 for the bug
[10:01] * philiKON looks at the traceback
[10:01] <srichter> mgedmin: the fix  is  in r1234 & r1235, <b> tags escaped
[10:02] *** philiKON is now known as philiKON_away
[10:02] <philiKON_away> brb
[10:03] -NickServ- This nickname is registered
[10:04] *** srichter has left #zope3-dev
[10:05] --- topic: Zope 3 development
`

func main() {
	events, err := reader.New(reader.Config{}).Read(strings.NewReader(sample))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	styles := htmlrender.Styles
	if len(os.Args) > 1 {
		st, err := htmlrender.Lookup(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		styles = []htmlrender.Style{st}
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	conv := convert.New(convert.Config{})
	for _, st := range styles {
		page := render.Page{
			Title: "IRC log of #zope3-dev for Tuesday, 2005-01-04 (" + st.Name + ")",
			Prev:  render.Link{URL: "2005-01-03.log.html", Title: "« Monday, 2005-01-03"},
			Index: render.Link{URL: "index.html", Title: "Index"},
			Next:  render.Link{URL: "2005-01-05.log.html", Title: "Wednesday, 2005-01-05 »"},
		}
		r := htmlrender.New(w, st.Variant, render.DefaultColours())
		if err := conv.Convert(events, r, page); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
