// Package yamlwrapper contains a YAML unmarshaler that honors JSON tags and json.Unmarshaler.
package yamlwrapper

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// yaml.v2 decodes mappings into map[any]any, which encoding/json refuses.
func normalize(v any) (any, error) {
	switch tv := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(tv))
		for key, val := range tv {
			skey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string keys are not supported (%v)", key)
			}

			nval, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[skey] = nval
		}
		return out, nil

	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			nval, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = nval
		}
		return out, nil
	}

	return v, nil
}

// Unmarshal decodes YAML into dest, going through JSON.
func Unmarshal(buf []byte, dest any) error {
	var generic any
	err := yaml.UnmarshalStrict(buf, &generic)
	if err != nil {
		return err
	}

	generic, err = normalize(generic)
	if err != nil {
		return err
	}

	enc, err := json.Marshal(generic)
	if err != nil {
		return err
	}

	return json.Unmarshal(enc, dest)
}
