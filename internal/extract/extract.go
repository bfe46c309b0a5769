// Package extract pulls customer identity out of free-form ticket text.
// It is a best-effort heuristic: ambiguous or malformed headers degrade to
// sentinel defaults rather than failing.
package extract

import (
	"regexp"
	"strings"
)

const (
	// DefaultEmail is returned when no address is found in the text.
	DefaultEmail = "unknown@example.com"
	// DefaultName is returned when no name line is found in the text.
	DefaultName = "Unknown Customer"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// CustomerInfo holds the identity extracted from a ticket.
type CustomerInfo struct {
	Email string
	Name  string
}

// ExtractCustomerInfo scans ticket content for the first email address and
// for a line carrying a case-insensitive "name:" label, taking the text
// after the first colon on that line as the display name.
func ExtractCustomerInfo(content string) CustomerInfo {
	info := CustomerInfo{
		Email: DefaultEmail,
		Name:  DefaultName,
	}

	if match := emailPattern.FindString(content); match != "" {
		info.Email = match
	}

	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(strings.ToLower(line), "name:") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			if name := strings.TrimSpace(parts[1]); name != "" {
				info.Name = name
			}
		}
		break
	}

	return info
}
