package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldoc-dev/ldoc/modes"
	"github.com/ldoc-dev/ldoc/render"
)

func TestConfigFromBytes(t *testing.T) {
	input := []byte(`
{
	"section_level": "subsection",
	"public_only": false,
	"registry": "build/index.json",
	"operators": [
		{"name": "===", "arity": 2, "fixity": "infix"}
	]
}
`)

	config, err := configFromBytes(input)
	assert.NoError(t, err)

	no := false
	expected := configuration{
		SectionLevel: "subsection",
		PublicOnly:   &no,
		Registry:     "build/index.json",
		Operators: []operatorDecl{
			{Name: "===", Arity: 2, Fixity: "infix"},
		},
	}

	assert.Equal(t, expected, config)
}

func TestConfigFromBytes_Malformed(t *testing.T) {
	_, err := configFromBytes([]byte(`{"section_level": 3}`))
	assert.Error(t, err)
}

func TestOptionsPrecedence(t *testing.T) {
	yes, no := true, false
	chapter := "chapter"

	// Defaults alone.
	opts, err := configuration{}.options(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, render.DefaultOptions(), opts)

	// Configuration overrides defaults.
	config := configuration{SectionLevel: "subsection", PublicOnly: &no}
	opts, err = config.options(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, render.Subsection, opts.SectionLevel)
	assert.False(t, opts.PublicOnly)
	assert.True(t, opts.StandAlone)

	// Flags override the configuration.
	opts, err = config.options(&chapter, &yes, &no)
	assert.NoError(t, err)
	assert.Equal(t, render.Chapter, opts.SectionLevel)
	assert.True(t, opts.PublicOnly)
	assert.False(t, opts.StandAlone)
}

func TestOptionsRejectsBadLevel(t *testing.T) {
	_, err := configuration{SectionLevel: "part"}.options(nil, nil, nil)
	assert.Error(t, err)

	bad := "huge"
	_, err = configuration{}.options(&bad, nil, nil)
	assert.Error(t, err)
}

func TestConfigOps(t *testing.T) {
	config := configuration{Operators: []operatorDecl{
		{Name: "===", Arity: 2, Fixity: "infix"},
		{Name: "~", Arity: 1, Fixity: "prefix"},
	}}

	table, err := config.ops()
	assert.NoError(t, err)

	sig, ok := modes.ParseModeLine("===(+A, +B) is semidet", table)
	assert.True(t, ok)
	assert.Equal(t, modes.Infix, sig.Fixity)

	sig, ok = modes.ParseModeLine("~(+X)", table)
	assert.True(t, ok)
	assert.Equal(t, modes.Prefix, sig.Fixity)
}

func TestConfigOps_BadFixity(t *testing.T) {
	config := configuration{Operators: []operatorDecl{
		{Name: "x", Arity: 2, Fixity: "sideways"},
	}}
	_, err := config.ops()
	assert.Error(t, err)
}

func TestConfigOps_ArityMustFitFixity(t *testing.T) {
	cases := []operatorDecl{
		{Name: "~>", Arity: 1, Fixity: "infix"},
		{Name: "~>", Arity: 2, Fixity: "prefix"},
		{Name: "~>", Arity: 3, Fixity: "postfix"},
	}
	for _, decl := range cases {
		_, err := configuration{Operators: []operatorDecl{decl}}.ops()
		assert.Error(t, err, "%s %s/%d accepted", decl.Fixity, decl.Name, decl.Arity)
	}
}
