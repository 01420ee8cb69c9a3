package services

import (
	"testing"

	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected models.Priority
		urgent   bool
	}{
		{"empty message", "", models.PriorityMedium, false},
		{"plain inquiry", "I would like a quote for next month", models.PriorityMedium, false},
		{"urgent keyword", "this is urgent, please respond", models.PriorityUrgent, true},
		{"uppercase trigger", "Please call ASAP", models.PriorityUrgent, true},
		{"emergency", "EMERGENCY - water damage everywhere", models.PriorityUrgent, true},
		{"immediately", "need movers immediately", models.PriorityUrgent, true},
		{"rush", "this is a rush job", models.PriorityUrgent, true},
		{"trigger inside word", "we are rushing to finish", models.PriorityUrgent, true},
		{"no trigger words", "flexible on timing, whenever works", models.PriorityMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			priority, urgent := ClassifyPriority(tt.message)
			assert.Equal(t, tt.expected, priority)
			assert.Equal(t, tt.urgent, urgent)
		})
	}
}

func TestClassifyPriorityIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		priority, urgent := ClassifyPriority("please call asap")
		assert.Equal(t, models.PriorityUrgent, priority)
		assert.True(t, urgent)
	}
}
