package main

import (
	"fmt"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/bson"
	"github.com/inferlab/schemalens/source/cbor"
	"github.com/inferlab/schemalens/source/json"
	"github.com/inferlab/schemalens/source/toml"
	"github.com/inferlab/schemalens/source/xmlsrc"
	"github.com/inferlab/schemalens/source/yaml"
)

// newSource builds the [schemalens.TokenSource] for one document, dispatching
// on the --format tag per spec.md §6's format-tag set.
func newSource(format string, data []byte) (schemalens.TokenSource, error) {
	switch format {
	case "json":
		return json.NewFromBytes(data), nil
	case "yaml":
		return yaml.NewSource(data)
	case "toml":
		return toml.NewSource(data)
	case "cbor":
		return cbor.NewSource(data)
	case "bson":
		return bson.NewSource(data)
	case "xml":
		return xmlsrc.NewSource(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidOption, format)
	}
}
