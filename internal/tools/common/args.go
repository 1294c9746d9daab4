package common

// Argument extraction helpers shared by the tool packages. MCP request
// arguments arrive as map[string]interface{} with JSON's loose typing:
// numbers are float64 and arrays are []interface{}.

// GetStringArg returns the string value for key, or fallback when the
// argument is absent or not a string.
func GetStringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return fallback
}

// GetBoolArg returns the bool value for key, or fallback when the
// argument is absent or not a bool.
func GetBoolArg(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// GetIntArg returns the numeric value for key truncated to int, or
// fallback when the argument is absent or not a number. An explicit
// zero is honored; only a missing argument yields the fallback.
func GetIntArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// GetStringSliceArg returns the string-array value for key. A missing
// or malformed argument yields nil; non-string elements are skipped.
func GetStringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetCalendarNamesFromArgs extracts the calendar_names restriction from
// request arguments. Nil means the query is not restricted; an empty
// slice (explicitly supplied) means the same, by wire-shape convention.
func GetCalendarNamesFromArgs(args map[string]interface{}) []string {
	return GetStringSliceArg(args, "calendar_names")
}
