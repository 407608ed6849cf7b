package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/ldoc-dev/ldoc/modes"
	"github.com/ldoc-dev/ldoc/render"
)

// configuration is the optional ldoc.json file. Command-line flags win over
// it; it wins over the built-in defaults.
type configuration struct {
	SectionLevel string `json:"section_level,omitempty"`
	PublicOnly   *bool  `json:"public_only,omitempty"`
	StandAlone   *bool  `json:"stand_alone,omitempty"`

	// Registry is the default cross-reference registry file.
	Registry string `json:"registry,omitempty"`

	// Operators extends the operator table used for signature fixity.
	Operators []operatorDecl `json:"operators,omitempty"`
}

type operatorDecl struct {
	Name   string `json:"name"`
	Arity  int    `json:"arity"`
	Fixity string `json:"fixity"` // infix, prefix or postfix
}

// loadConfig reads the configuration file. A missing file is not an error;
// the zero configuration applies.
func loadConfig(path string) (configuration, error) {
	var config configuration
	fileBytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

func configFromBytes(data []byte) (configuration, error) {
	var config configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "could not parse config")
	}
	return config, nil
}

// options resolves the rendering options: defaults first, then the
// configuration file, then any explicitly set flags.
func (c configuration) options(level *string, publicOnly, standalone *bool) (render.Options, error) {
	opts := render.DefaultOptions()

	if c.SectionLevel != "" {
		l, err := render.ParseLevel(c.SectionLevel)
		if err != nil {
			return opts, errors.Wrap(err, "invalid config")
		}
		opts.SectionLevel = l
	}
	if c.PublicOnly != nil {
		opts.PublicOnly = *c.PublicOnly
	}
	if c.StandAlone != nil {
		opts.StandAlone = *c.StandAlone
	}

	if level != nil {
		l, err := render.ParseLevel(*level)
		if err != nil {
			return opts, err
		}
		opts.SectionLevel = l
	}
	if publicOnly != nil {
		opts.PublicOnly = *publicOnly
	}
	if standalone != nil {
		opts.StandAlone = *standalone
	}
	return opts, nil
}

// ops builds the operator table: the defaults plus configured extensions.
func (c configuration) ops() (modes.OpTable, error) {
	table := modes.DefaultOps()
	for _, decl := range c.Operators {
		var f modes.Fixity
		switch decl.Fixity {
		case "infix":
			f = modes.Infix
		case "prefix":
			f = modes.Prefix
		case "postfix":
			f = modes.Postfix
		default:
			return nil, errors.Errorf("unknown fixity %q for operator %s/%d",
				decl.Fixity, decl.Name, decl.Arity)
		}
		want := 1
		if f == modes.Infix {
			want = 2
		}
		if decl.Arity != want {
			return nil, errors.Errorf("operator %s/%d cannot be %s",
				decl.Name, decl.Arity, decl.Fixity)
		}
		table.Register(decl.Name, decl.Arity, f)
	}
	return table, nil
}
