package utils

import (
	"strings"
	"unicode"
)

// IncludeGuard builds the include guard macro for filename. Letters and
// digits are upper-cased, '.' and '/' become '_', anything else is dropped,
// and a trailing '_' is appended.
//
// Examples:
//   - ("", "widget.h") -> "WIDGET_H_"
//   - ("APP_", "core/widget.h") -> "APP_CORE_WIDGET_H_"
//   - ("", "my-file.hpp") -> "MYFILE_HPP_"
func IncludeGuard(prefix, filename string) string {
	var sb strings.Builder
	sb.WriteString(prefix)

	for _, c := range filename {
		switch {
		case c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)):
			sb.WriteRune(unicode.ToUpper(c))
		case c == '.' || c == '/':
			sb.WriteByte('_')
		}
	}

	sb.WriteByte('_')
	return sb.String()
}

// QuoteInclude returns the target of an #include directive. Headers that
// contain '<' or '>' are used as-is, anything else is double-quoted.
//
// Examples:
//   - "widget.h" -> "\"widget.h\""
//   - "<vector>" -> "<vector>"
//   - "\"already.h\"" -> "\"already.h\""
func QuoteInclude(header string) string {
	if strings.ContainsAny(header, "<>") || IsQuoted(header) {
		return header
	}
	return `"` + header + `"`
}

// IsQuoted reports whether s is wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// AccessorName builds a getter or setter name from a member name by
// trimming leading and trailing underscores (and an "m_" prefix) and
// capitalizing the first letter.
//
// Examples:
//   - ("Get", "count_") -> "GetCount"
//   - ("Set", "m_name") -> "SetName"
//   - ("Get", "id") -> "GetId"
func AccessorName(prefix, member string) string {
	name := strings.TrimPrefix(member, "m_")
	name = strings.Trim(name, "_")
	if name == "" {
		return prefix + member
	}

	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return prefix + string(runes)
}
