package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// checkRegex caches compiled patterns on the registry, keyed by source text.
func (r *Registry) checkRegex(param Key, value any, arg any) error {
	pattern, ok := arg.(string)
	if !ok {
		return invalidArgError(param, RuleRegex, arg, "pattern must be a string")
	}
	re, err := r.compilePattern(pattern)
	if err != nil {
		return invalidArgError(param, RuleRegex, arg, err.Error())
	}
	if re.MatchString(textOf(value)) {
		return nil
	}
	return constraintError(param, value, RuleRegex, arg, ErrPatternMismatch,
		fmt.Sprintf("does not match pattern %q", pattern),
		"validation.regex_pattern",
		map[string]any{"pattern": pattern},
	)
}

func (r *Registry) compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := r.patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	expr, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	r.patterns.Store(pattern, re)
	return re, nil
}

// translatePattern accepts slash-delimited patterns such as `/^a+$/i` and
// turns their trailing flags into RE2 inline flags. Anything else is
// returned unchanged.
func translatePattern(pattern string) (string, error) {
	if len(pattern) < 2 || pattern[0] != '/' {
		return pattern, nil
	}
	end := strings.LastIndexByte(pattern, '/')
	if end == 0 {
		return pattern, nil
	}
	flags := pattern[end+1:]
	if strings.Trim(flags, "imsxU") != "" {
		return pattern, nil
	}

	body := pattern[1:end]
	if flags == "" {
		return body, nil
	}
	if strings.ContainsRune(flags, 'x') {
		return "", fmt.Errorf("pattern flag 'x' is not supported")
	}
	return "(?" + flags + ")" + body, nil
}

// textOf coerces a value to the text a pattern is matched against.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
