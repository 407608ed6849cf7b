package main

import (
	"github.com/k0kubun/pp"

	"github.com/ldoc-dev/ldoc/markup"
)

// dumpTree pretty-prints a parsed document tree for --debug runs.
func dumpTree(doc *markup.Doc) {
	pp.Printf("%s@%d summary=%s\n", doc.File, doc.Offset, doc.Summary)
	for _, sig := range doc.Signatures {
		pp.Println(sig.String())
	}
	pp.Println(doc.Nodes)
}
