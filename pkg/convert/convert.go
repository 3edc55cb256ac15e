// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package convert provides fault-tolerant conversions for query parameters.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
)

// ToIntD converts a string to an int, returning def if parsing fails or the string is empty.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToBoolD parses a boolean string ("true", "1", "false", "0"), returning def
// on an empty string or parse error.
func ToBoolD(str string, def bool) bool {
	if str == "" {
		return def
	}
	if v, err := strconv.ParseBool(str); err == nil {
		return v
	}
	return def
}
