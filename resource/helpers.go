package resource

import "reflect"

func Clone(src Props) Props {
	if src == nil {
		return Props{}
	}
	dst := make(Props, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// Merge returns a copy of base with overrides applied on top. Neither input
// is modified.
func Merge(base Props, overrides Props) Props {
	merged := Clone(base)
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// Equal reports deep equality of two attribute maps. Used to gate update
// calls on projected API parameters.
func Equal(a Props, b Props) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// String extracts a string attribute, tolerating absence.
func String(props Props, key string) string {
	value, found := props[key]
	if !found {
		return ""
	}
	str, _ := value.(string)
	return str
}

// List extracts a child-collection attribute as a slice of Props. Decoded
// configuration trees carry collections as []any of map[string]any; typed
// slices produced by tests and callers are accepted as well.
func List(props Props, key string) []Props {
	value, found := props[key]
	if !found || value == nil {
		return nil
	}

	switch typed := value.(type) {
	case []Props:
		return typed
	case []any:
		items := make([]Props, 0, len(typed))
		for _, item := range typed {
			if asMap, ok := item.(map[string]any); ok {
				items = append(items, asMap)
			}
		}
		return items
	}
	return nil
}

// StringList extracts a list attribute of plain strings.
func StringList(props Props, key string) []string {
	value, found := props[key]
	if !found || value == nil {
		return nil
	}

	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			if str, ok := item.(string); ok {
				items = append(items, str)
			}
		}
		return items
	}
	return nil
}

// Names projects a collection onto its identifying attribute.
func Names(items []Props, nameKey string) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, String(item, nameKey))
	}
	return names
}
