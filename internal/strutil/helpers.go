package strutil

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t', '\r':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS strips whitespaces from both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}
