package domain

import "strconv"

// FormatMoney renders an integer naira amount with thousands separators,
// e.g. 26000 -> "₦26,000".
func FormatMoney(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) > 3 {
		var b []byte
		lead := len(s) % 3
		if lead == 0 {
			lead = 3
		}
		b = append(b, s[:lead]...)
		for i := lead; i < len(s); i += 3 {
			b = append(b, ',')
			b = append(b, s[i:i+3]...)
		}
		s = string(b)
	}
	if neg {
		return "-₦" + s
	}
	return "₦" + s
}

// TitleCase converts an item key like "ram_8gb" to "Ram 8gb" for display.
func TitleCase(key string) string {
	out := []rune(key)
	upperNext := true
	for i, r := range out {
		switch {
		case r == '_':
			out[i] = ' '
			upperNext = true
		case upperNext && r >= 'a' && r <= 'z':
			out[i] = r - 'a' + 'A'
			upperNext = false
		default:
			upperNext = false
		}
	}
	return string(out)
}

// StatusLabel renders a status value for humans: "pending_confirmation" ->
// "Pending Confirmation".
func StatusLabel(s Status) string {
	return TitleCase(string(s))
}
