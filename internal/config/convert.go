package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool interprets the loose boolean vocabulary accepted in monitor
// configurations. The second return is false when value is not a
// recognized boolean string.
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "1", "true":
		return true, true
	case "no", "0", "false":
		return false, true
	}
	return false, false
}

// ParseList splits a whitespace-separated value list.
func ParseList(value string) []string {
	return strings.Fields(value)
}

// ParseKeyValues converts a space-separated series of key=value pairs
// into a map. A pair without '=' is an error.
func ParseKeyValues(value string) (map[string]string, error) {
	pairs := make(map[string]string)
	for _, option := range strings.Fields(value) {
		k, v, ok := strings.Cut(option, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid option %q for key-value pair: %s", option, value)
		}
		pairs[k] = strings.TrimSpace(v)
	}
	return pairs, nil
}

// ParseInt converts value to an integer, tolerating float renderings the
// way legacy monitor configs wrote them ("30.0" becomes 30).
func ParseInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value %q", value)
	}
	return int(f), nil
}
