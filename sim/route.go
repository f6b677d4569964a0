package sim

import "strings"

// ParseRoute splits a comma-separated route into trimmed station names,
// dropping empty entries.
func ParseRoute(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	route := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			route = append(route, name)
		}
	}
	return route
}

// FormatRoute joins a route back into its stored comma-separated form.
func FormatRoute(route []string) string {
	return strings.Join(route, ",")
}

// RemainingRoute returns route minus completed, preserving route order.
// Station names are matched exactly: "TESIR A1" does not match "TESIR A1-2".
func RemainingRoute(route []string, completed []string) []string {
	done := make(map[string]bool, len(completed))
	for _, s := range completed {
		done[s] = true
	}
	remaining := make([]string, 0, len(route))
	for _, s := range route {
		if !done[s] {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// CurrentStation returns the first station of route not yet completed, or ""
// when every station is done.
func CurrentStation(route []string, completed []string) string {
	remaining := RemainingRoute(route, completed)
	if len(remaining) == 0 {
		return ""
	}
	return remaining[0]
}
