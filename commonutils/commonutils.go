package commonutils

import "strconv"

func IsFlagPositiveNumber(flag string) bool {
	num, ok := parseFlagNumber(flag)
	return ok && num > 0
}

func IsFlagNonNegativeNumber(flag string) bool {
	num, ok := parseFlagNumber(flag)
	return ok && num >= 0
}

func parseFlagNumber(flag string) (int, bool) {
	num, err := strconv.Atoi(flag)
	if err != nil {
		return 0, false
	}
	return num, true
}
