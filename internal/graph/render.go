// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"html"
	"io"
)

// Render emits a Graphviz dot diagnostic: sources shaded light-green,
// sinks light-blue, intermediate nodes light-grey, each node labelled with
// id, type, and config key-value pairs, edges labelled with the msg type
// name (HTML-escaped for safe inclusion in the label).
func (g *Graph) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph G {"); err != nil {
		return err
	}

	for id, n := range g.nodes {
		fill := "lightgrey"
		switch {
		case g.IsSource(NodeID(id)):
			fill = "lightgreen"
		case g.IsSink(NodeID(id)):
			fill = "lightblue"
		}

		configLines := ""
		if n.Config != nil {
			for _, k := range n.Config.Keys() {
				v, _ := n.Config.Get(k)
				configLines += fmt.Sprintf("<B>%s</B> = %s<BR ALIGN=\"LEFT\"/>", html.EscapeString(k), html.EscapeString(v.String()))
			}
		}

		fmt.Fprintf(w, "%d [\n", id)
		fmt.Fprintln(w, "shape=box,")
		fmt.Fprintln(w, "style=\"rounded, filled\",")
		fmt.Fprintln(w, "fontname=\"Noto Sans\",")
		fmt.Fprintf(w, "fillcolor=%s,\n", fill)
		fmt.Fprintln(w, "color=grey,")
		fmt.Fprintln(w, "labeljust=l,")
		fmt.Fprintf(w, "label=< <FONT COLOR=\"red\"><B>%s</B></FONT> <FONT COLOR=\"dimgray\">[%s]</FONT><BR ALIGN=\"LEFT\"/>%s >\n",
			html.EscapeString(n.DocID), html.EscapeString(n.Type), configLines)
		fmt.Fprintln(w, "];")
	}

	for _, c := range g.connections {
		fmt.Fprintf(w, "%d -> %d [label=< <B><FONT COLOR=\"gray\">%s</FONT></B> >];\n",
			c.Src, c.Dst, html.EscapeString(c.Msg))
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
