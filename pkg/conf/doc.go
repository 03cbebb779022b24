/*
Package conf provides the high-level API for reading, editing and writing
structured configuration text.

A Document binds a parsed node tree to the source and format it came
from; the tree is edited structurally through pkg/tree and rendered or
written back through any registered format driver.

# Quick Start

Parse a file, change one directive, write it back:

	doc := conf.New(conf.DocumentOptions{})
	if err := doc.ParseFile("app.ini", conf.FormatINICommented); err != nil {
	    log.Fatal(err)
	}
	db, _ := doc.Root().Find(tree.Match{Kind: types.KindSection, Name: "db"})
	db.SetDirective("port", "5433")
	if err := doc.Save(); err != nil {
	    log.Fatal(err)
	}

# Formats

DefaultRegistry registers the built-in drivers:

	plain          key/value lines with configurable separator
	ini            strict ini, comments dropped
	ini-commented  ini with comments, blanks and quoted values preserved
	apache         bracketed block sections
	xml            markup elements
	json           structural JSON, line comments tolerated on input
	env            NAME=value definition lines

Formats are a document-level choice, not a tree-level one: any tree can
be rendered in any format, with the structural conversions each driver
documents.

	text, err := doc.RenderAs(conf.FormatXML)

# Filesystems

Documents read and write through an afero filesystem supplied at
construction, so tests and tools can swap in a memory-backed one:

	doc := conf.New(conf.DocumentOptions{FS: afero.NewMemMapFs()})

# Struct Decoding

Decode binds a parsed tree onto a caller struct, weakly typed so textual
directive content fills numeric and boolean fields:

	var cfg struct {
	    DB struct {
	        Host string `conf:"host"`
	        Port int    `conf:"port"`
	    } `conf:"db"`
	}
	err := doc.Decode(&cfg)

# Errors

Failures carry *types.Error with a kind, or *types.ParseError with the
input name and physical line for syntax errors. Sentinels such as
types.ErrUnknownFormat match with errors.Is.
*/
package conf
