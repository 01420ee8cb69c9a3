package services

import (
	"strings"

	"github.com/emanuelpaduret/alex-backend/models"
)

// AutoUrgentTag is appended to metadata tags when the classifier fires, so
// staff can tell an auto-derived priority from a caller-supplied one.
const AutoUrgentTag = "auto-urgent"

// urgencyTriggers are matched as literal substrings of the lowercased message
var urgencyTriggers = []string{"urgent", "asap", "emergency", "immediately", "rush"}

// ClassifyPriority derives a priority from the message content. Pure: no
// storage or network access, deterministic for a given message. The second
// return reports whether an urgency trigger fired.
func ClassifyPriority(message string) (models.Priority, bool) {
	lowered := strings.ToLower(message)
	for _, trigger := range urgencyTriggers {
		if strings.Contains(lowered, trigger) {
			return models.PriorityUrgent, true
		}
	}
	return models.PriorityMedium, false
}
