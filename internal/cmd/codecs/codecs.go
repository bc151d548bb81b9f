// Package codecs selects document codecs for CLI commands.
package codecs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yacchi/tsugihagi/format"
	jsoncodec "github.com/yacchi/tsugihagi/format/json"
	jsonccodec "github.com/yacchi/tsugihagi/format/jsonc"
	tomlcodec "github.com/yacchi/tsugihagi/format/toml"
	yamlcodec "github.com/yacchi/tsugihagi/format/yaml"
)

var byName = map[string]format.Codec{
	"json":  jsoncodec.Codec{},
	"jsonc": jsonccodec.Codec{},
	"yaml":  yamlcodec.Codec{},
	"toml":  tomlcodec.Codec{},
}

var byExtension = map[string]string{
	".json":  "json",
	".jsonc": "jsonc",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
}

// Names returns the supported codec names in a stable order.
func Names() []string {
	return []string{"json", "jsonc", "yaml", "toml"}
}

// ByName returns the codec registered under name.
func ByName(name string) (format.Codec, error) {
	c, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// ByExtension returns the codec for the file extension of path.
func ByExtension(path string) (format.Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("cannot determine format of %q, use an explicit format flag", path)
	}
	return byName[name], nil
}

// Resolve returns the codec for an explicit name, falling back to the
// file extension of path when name is empty.
func Resolve(name, path string) (format.Codec, error) {
	if name != "" {
		return ByName(name)
	}
	return ByExtension(path)
}
