package review

import (
	"encoding/json"
	"fmt"
	"math"
)

// Validate checks a structurally parsed value against the review schema
// and converts it to a Result. Unknown fields are ignored; unknown
// severity or type values are rejected rather than coerced.
func Validate(v any) (*Result, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("expected object, got %s", typeName(v))}
	}

	res := &Result{Issues: []Issue{}}

	if raw, present := obj["issues"]; present {
		list, ok := raw.([]any)
		if !ok {
			return nil, &ValidationError{Path: "issues", Reason: fmt.Sprintf("expected array, got %s", typeName(raw))}
		}
		for i, item := range list {
			issue, err := validateIssue(item, fmt.Sprintf("issues[%d]", i))
			if err != nil {
				return nil, err
			}
			res.Issues = append(res.Issues, issue)
		}
	}

	if raw, present := obj["fixedCode"]; present {
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Path: "fixedCode", Reason: fmt.Sprintf("expected string, got %s", typeName(raw))}
		}
		res.FixedCode = s
	}

	return res, nil
}

func validateIssue(v any, path string) (Issue, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Issue{}, &ValidationError{Path: path, Reason: fmt.Sprintf("expected object, got %s", typeName(v))}
	}

	var issue Issue
	var err error

	if issue.Title, err = requiredString(obj, "title", path); err != nil {
		return Issue{}, err
	}
	if issue.Description, err = requiredString(obj, "description", path); err != nil {
		return Issue{}, err
	}

	sev, err := requiredString(obj, "severity", path)
	if err != nil {
		return Issue{}, err
	}
	issue.Severity = Severity(sev)
	if !issue.Severity.Valid() {
		return Issue{}, &ValidationError{Path: path + ".severity", Reason: fmt.Sprintf("unknown severity %q", sev)}
	}

	if typ, present, err := optionalString(obj, "type", path); err != nil {
		return Issue{}, err
	} else if present {
		issue.Type = IssueType(typ)
		if !issue.Type.Valid() {
			return Issue{}, &ValidationError{Path: path + ".type", Reason: fmt.Sprintf("unknown type %q", typ)}
		}
	}

	if issue.LineStart, err = optionalLine(obj, "lineStart", path); err != nil {
		return Issue{}, err
	}
	if issue.LineEnd, err = optionalLine(obj, "lineEnd", path); err != nil {
		return Issue{}, err
	}

	if s, present, err := optionalString(obj, "suggestion", path); err != nil {
		return Issue{}, err
	} else if present {
		issue.Suggestion = s
	}

	return issue, nil
}

func requiredString(obj map[string]any, key, path string) (string, error) {
	s, present, err := optionalString(obj, key, path)
	if err != nil {
		return "", err
	}
	if !present {
		return "", &ValidationError{Path: path + "." + key, Reason: "required"}
	}
	return s, nil
}

func optionalString(obj map[string]any, key, path string) (string, bool, error) {
	raw, present := obj[key]
	if !present {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("expected string, got %s", typeName(raw))}
	}
	return s, true, nil
}

func optionalLine(obj map[string]any, key, path string) (*int, error) {
	raw, present := obj[key]
	if !present {
		return nil, nil
	}

	var f float64
	switch n := raw.(type) {
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return nil, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("invalid number %q", n.String())}
		}
	case float64:
		f = n
	default:
		return nil, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("expected integer, got %s", typeName(raw))}
	}

	if f != math.Trunc(f) {
		return nil, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("expected integer, got %v", raw)}
	}
	if f >= float64(math.MaxInt) {
		return nil, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("out of range, got %v", raw)}
	}
	if f < 1 {
		return nil, &ValidationError{Path: path + "." + key, Reason: fmt.Sprintf("must be >= 1, got %v", raw)}
	}
	line := int(f)
	return &line, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
