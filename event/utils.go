package event

import (
	"github.com/goccy/go-json"
)

// Encode serializes e as JSON.
func Encode(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

// CloneContexts returns a deep copy of a context set.
func CloneContexts(contexts map[string]Context) map[string]Context {
	if contexts == nil {
		return nil
	}
	out := make(map[string]Context, len(contexts))
	for k, v := range contexts {
		out[k] = v.Clone()
	}
	return out
}

// CloneBreadcrumbs returns a deep copy of a breadcrumb list.
func CloneBreadcrumbs(in []Breadcrumb) []Breadcrumb {
	if in == nil {
		return nil
	}
	out := make([]Breadcrumb, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}

// CloneTags returns a copy of a tag map.
func CloneTags(tags map[string]string) map[string]string {
	return cloneStrings(tags)
}

// CloneData returns a deep copy of an arbitrary data map. Nested maps and
// slices of the JSON shapes are copied; other values are copied by value.
func CloneData(data map[string]interface{}) map[string]interface{} {
	return cloneMap(data)
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneMap(val)
	case Context:
		return val.Clone()
	case map[string]string:
		return cloneStrings(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
