package normalize

import "strings"

type Status string

const (
	StatusActive     Status = "Active"
	StatusOnLeave    Status = "On Leave"
	StatusTerminated Status = "Terminated"
)

var (
	terminatedSynonyms = []string{"inactive", "terminated", "not active", "left", "resigned"}
	onLeaveSynonyms    = []string{"on leave", "leave", "loa"}
)

// NormalizeStatus maps free-text employment status onto the roster enum.
// Unknown and empty values are Active.
func NormalizeStatus(raw string) Status {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range terminatedSynonyms {
		if v == s {
			return StatusTerminated
		}
	}
	for _, s := range onLeaveSynonyms {
		if v == s {
			return StatusOnLeave
		}
	}
	return StatusActive
}
