package lexmodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/resource"
)

// ProjectOptions tunes how raw lifecycle attributes are projected onto an
// operation's declared input shape.
type ProjectOptions struct {
	// IgnorePrefix marks attributes that describe child collections rather
	// than API fields. Defaults to resource.CustomAttrPrefix.
	IgnorePrefix string
	// Ignore lists attributes dropped without complaint even in strict mode
	// (e.g. botTags is not a valid UpdateBot parameter).
	Ignore []string
	// Strict fails on attributes the shape does not declare instead of
	// silently dropping them.
	Strict bool
}

// Project validates params against the operation's input shape and coerces
// every member to its declared type. Lifecycle callers stringify scalars, so
// booleans, integers, and floats arrive as strings and are parsed back here.
// Attributes carrying the custom prefix, the ServiceToken bookkeeping field,
// and explicitly ignored attributes are stripped.
func Project(operation string, params resource.Props, opts ProjectOptions) (resource.Props, error) {
	op, err := Lookup(operation)
	if err != nil {
		return nil, err
	}
	if opts.IgnorePrefix == "" {
		opts.IgnorePrefix = resource.CustomAttrPrefix
	}
	return projectShape(op.Input, params, opts)
}

func projectShape(shape Shape, params resource.Props, opts ProjectOptions) (resource.Props, error) {
	for _, key := range shape.Required {
		if _, found := params[key]; !found {
			return nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("missing required parameter %q", key),
				nil,
			)
		}
	}

	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, key := range opts.Ignore {
		ignored[key] = struct{}{}
	}

	projected := make(resource.Props, len(params))
	for key, value := range params {
		member, declared := shape.Members[key]
		if !declared {
			if strings.HasPrefix(key, opts.IgnorePrefix) || key == "ServiceToken" {
				continue
			}
			if _, skip := ignored[key]; skip {
				continue
			}
			if opts.Strict {
				return nil, faults.NewTypedError(
					faults.ValidationError,
					fmt.Sprintf("unexpected parameter %q", key),
					nil,
				)
			}
			continue
		}
		if _, skip := ignored[key]; skip {
			continue
		}

		coerced, err := coerceMember(key, member, value, opts)
		if err != nil {
			return nil, err
		}
		projected[key] = coerced
	}

	return projected, nil
}

func coerceMember(key string, member Member, value any, opts ProjectOptions) (any, error) {
	switch member.Kind {
	case KindStructure:
		asMap, ok := value.(map[string]any)
		if !ok {
			return nil, coercionError(key, "structure", value)
		}
		if member.Shape == nil {
			return resource.Clone(asMap), nil
		}
		// Nested structures never carry custom attributes or strictness.
		return projectShape(*member.Shape, asMap, ProjectOptions{IgnorePrefix: opts.IgnorePrefix})
	case KindList:
		items, ok := asSlice(value)
		if !ok {
			return nil, coercionError(key, "list", value)
		}
		coerced := make([]any, len(items))
		for idx, item := range items {
			elem := Member{Kind: KindDocument}
			if member.Elem != nil {
				elem = *member.Elem
			}
			result, err := coerceMember(key, elem, item, opts)
			if err != nil {
				return nil, err
			}
			coerced[idx] = result
		}
		return coerced, nil
	case KindMap:
		asMap, ok := value.(map[string]any)
		if !ok {
			return nil, coercionError(key, "map", value)
		}
		return resource.Clone(asMap), nil
	case KindString:
		if str, ok := value.(string); ok {
			return str, nil
		}
		return fmt.Sprint(value), nil
	case KindBool:
		switch typed := value.(type) {
		case bool:
			return typed, nil
		case string:
			return strings.EqualFold(typed, "true"), nil
		}
		return nil, coercionError(key, "boolean", value)
	case KindInteger:
		switch typed := value.(type) {
		case int:
			return typed, nil
		case int64:
			return int(typed), nil
		case float64:
			return int(typed), nil
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(typed))
			if err != nil {
				return nil, coercionError(key, "integer", value)
			}
			return parsed, nil
		}
		return nil, coercionError(key, "integer", value)
	case KindFloat:
		switch typed := value.(type) {
		case float64:
			return typed, nil
		case int:
			return float64(typed), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
			if err != nil {
				return nil, coercionError(key, "float", value)
			}
			return parsed, nil
		}
		return nil, coercionError(key, "float", value)
	case KindDocument:
		return value, nil
	}

	return nil, faults.NewTypedError(
		faults.InternalError,
		fmt.Sprintf("unhandled field kind for parameter %q", key),
		nil,
	)
}

func asSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []resource.Props:
		items := make([]any, len(typed))
		for idx, item := range typed {
			items[idx] = item
		}
		return items, true
	}
	return nil, false
}

func coercionError(key string, expected string, value any) error {
	return faults.NewTypedError(
		faults.ValidationError,
		fmt.Sprintf("parameter %q is not a valid %s (got %T)", key, expected, value),
		nil,
	)
}
