package utils

import "strconv"

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 parses a base-10 int64, e.g. a path parameter ID.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
