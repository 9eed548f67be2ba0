package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"
)

// DefaultValueLen is the number of runes Value keeps before truncating.
const DefaultValueLen = 64

// Value records an arbitrary value under the key "value", rendered by
// FormatValue with DefaultValueLen. Formatting is deferred until the record
// is actually handled.
func Value(v any) slog.Attr {
	return ValueN(v, DefaultValueLen)
}

// ValueN works like Value but truncates to maxLen runes.
func ValueN(v any, maxLen int) slog.Attr {
	return slog.Any("value", formattedValue{v: v, maxLen: maxLen})
}

type formattedValue struct {
	v      any
	maxLen int
}

func (f formattedValue) LogValue() slog.Value {
	return slog.StringValue(FormatValue(f.v, f.maxLen))
}

// FormatValue renders v for humans, truncated to maxLen runes with "..."
// appended. Strings are quoted after truncation and nil renders as "nil".
// A maxLen of zero or less uses DefaultValueLen.
func FormatValue(v any, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultValueLen
	}

	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(truncate(t, maxLen))
	}
	return truncate(fmt.Sprintf("%v", v), maxLen)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
