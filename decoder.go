package headers

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v2"
)

// decodeFile decodes the file found in the filename into a map based on its
// extension. It supports ".toml", ".yaml", ".yml", ".json" and ".ini".
//
// The keys of the default section of an ".ini" file are used and a repeated
// key becomes a `[]interface{}` of its values.
func decodeFile(filename string) (map[string]interface{}, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return decode(strings.ToLower(filepath.Ext(filename)), b)
}

// decode decodes the b into a map based on the ext.
func decode(ext string, b []byte) (map[string]interface{}, error) {
	m := map[string]interface{}{}
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("headers: failed to decode toml: %v", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("headers: failed to decode yaml: %v", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("headers: failed to decode json: %v", err)
		}
	case ".ini":
		f, err := ini.LoadSources(ini.LoadOptions{
			AllowShadows:        true,
			IgnoreInlineComment: true,
		}, b)
		if err != nil {
			return nil, fmt.Errorf("headers: failed to decode ini: %v", err)
		}

		for _, k := range f.Section("").Keys() {
			vs := k.ValueWithShadows()
			if len(vs) == 1 {
				m[k.Name()] = vs[0]
				continue
			}

			ivs := make([]interface{}, 0, len(vs))
			for _, v := range vs {
				ivs = append(ivs, v)
			}

			m[k.Name()] = ivs
		}
	default:
		return nil, fmt.Errorf("headers: unsupported file extension %q", ext)
	}

	return m, nil
}
