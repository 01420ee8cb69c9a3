package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	sub := &Submission{Name: "Jane", Email: "jane@x.com"}

	sub.Normalize(now)

	assert.Equal(t, SubmissionTypeOther, sub.SubmissionType)
	assert.Equal(t, StageInitialDemand, sub.Stage)
	assert.Equal(t, StatusNew, sub.Status)
	assert.Equal(t, PriorityMedium, sub.Priority)
	assert.Equal(t, DefaultSource, sub.Source)
	assert.Equal(t, now, sub.DateOfFirstContact.Time)
	assert.Equal(t, "2026-03-15 10:30:00", sub.Metadata.ProcessedAt)
}

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	sub := &Submission{
		Name:    "  Jane Doe ",
		Email:   "  JANE.DOE@X.COM ",
		Phone:   " 514-555-0101 ",
		Message: "  hello  ",
	}

	sub.Normalize(time.Now())

	assert.Equal(t, "Jane Doe", sub.Name)
	assert.Equal(t, "jane.doe@x.com", sub.Email)
	assert.Equal(t, "514-555-0101", sub.Phone)
	assert.Equal(t, "hello", sub.Message)
}

func TestNormalizeMaterializesSentinels(t *testing.T) {
	sub := &Submission{Name: "Jane", Email: "jane@x.com"}

	sub.Normalize(time.Now())

	assert.Equal(t, SentinelNotFound, sub.MovingDetails.MovingDate)
	assert.Equal(t, SentinelNotFound, sub.MovingDetails.PickupAddress)
	assert.Equal(t, SentinelNotFound, sub.MovingDetails.DeliveryAddress)
	assert.Equal(t, SentinelNotSpecified, sub.MovingDetails.ResidenceSize)
	assert.Equal(t, SentinelNotSpecified, sub.ContactDetails.PreferredMethod)
	assert.Equal(t, SentinelNotFound, sub.ServiceDetails.PreferredDate)
	assert.Equal(t, SentinelNotSpecified, sub.ServiceDetails.Description)
}

func TestNormalizeKeepsSuppliedValues(t *testing.T) {
	sub := &Submission{
		Name:     "Jane",
		Email:    "jane@x.com",
		Stage:    StageNegotiation,
		Priority: PriorityHigh,
		Source:   "landing-page",
		MovingDetails: &MovingDetails{
			MovingDate: "2026-09-01",
		},
	}

	sub.Normalize(time.Now())

	assert.Equal(t, StageNegotiation, sub.Stage)
	assert.Equal(t, PriorityHigh, sub.Priority)
	assert.Equal(t, "landing-page", sub.Source)
	assert.Equal(t, "2026-09-01", sub.MovingDetails.MovingDate)
	assert.Equal(t, SentinelNotFound, sub.MovingDetails.PickupAddress)
}

func TestNormalizeFreshCustomFieldsMap(t *testing.T) {
	a := &Submission{Name: "A", Email: "a@x.com"}
	b := &Submission{Name: "B", Email: "b@x.com"}
	a.Normalize(time.Now())
	b.Normalize(time.Now())

	a.CustomFields["key"] = "value"

	assert.NotContains(t, b.CustomFields, "key")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	now := time.Now()
	sub := &Submission{Name: "Jane", Email: "jane@x.com"}
	sub.Normalize(now)
	first := *sub

	sub.Normalize(now.Add(time.Hour))

	assert.Equal(t, first.SubmissionType, sub.SubmissionType)
	assert.Equal(t, first.DateOfFirstContact, sub.DateOfFirstContact)
	assert.Equal(t, first.Metadata.ProcessedAt, sub.Metadata.ProcessedAt)
	assert.Equal(t, SentinelNotFound, sub.MovingDetails.MovingDate)
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name     string
		sub      Submission
		expected string
	}{
		{
			name:     "missing name",
			sub:      Submission{Email: "jane@x.com"},
			expected: "Name is required",
		},
		{
			name:     "missing email",
			sub:      Submission{Name: "Jane"},
			expected: "Email is required",
		},
		{
			name:     "malformed email",
			sub:      Submission{Name: "Jane", Email: "not-an-email"},
			expected: "Email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.sub.Normalize(time.Now())
			msgs := tt.sub.Validate()
			assert.Contains(t, msgs, tt.expected)
		})
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	sub := Submission{Name: "Jane", Email: "jane@x.com", Stage: "Sideways"}
	sub.Normalize(time.Now())

	msgs := sub.Validate()

	assert.Contains(t, msgs, "Stage has an invalid value")
}

func TestValidatePassesNormalizedRecord(t *testing.T) {
	sub := Submission{Name: "Jane", Email: "jane@x.com"}
	sub.Normalize(time.Now())

	assert.Empty(t, sub.Validate())
}

func TestFlexTimeKeepsRawString(t *testing.T) {
	ft := ParseFlexTime("March 15th, around noon")

	assert.Equal(t, "March 15th, around noon", ft.String())
	assert.True(t, ft.Time.IsZero())
	assert.False(t, ft.IsZero())
}

func TestFlexTimeParsesRFC3339(t *testing.T) {
	ft := ParseFlexTime("2026-03-15T10:30:00Z")

	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC), ft.Time)
	assert.Equal(t, "2026-03-15T10:30:00Z", ft.String())
}

func TestFlexTimeJSONRoundTrip(t *testing.T) {
	original := ParseFlexTime("sometime next week")
	data, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded FlexTime
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Raw, decoded.Raw)
}

func TestFlexTimeJSONNull(t *testing.T) {
	var ft FlexTime
	assert.NoError(t, json.Unmarshal([]byte("null"), &ft))
	assert.True(t, ft.IsZero())
}

func TestStatusUpdateIsEmpty(t *testing.T) {
	assert.True(t, StatusUpdate{}.IsEmpty())

	stage := StageWon
	assert.False(t, StatusUpdate{Stage: &stage}.IsEmpty())

	empty := ""
	assert.False(t, StatusUpdate{AssignedTo: &empty}.IsEmpty())
}

func TestStatusUpdateValidate(t *testing.T) {
	badStage := Stage("Sideways")
	badStatus := Status("paused")

	msgs := StatusUpdate{Stage: &badStage, Status: &badStatus}.Validate()

	assert.Contains(t, msgs, "stage has an invalid value")
	assert.Contains(t, msgs, "status has an invalid value")

	goodStage := StageWon
	assert.Empty(t, StatusUpdate{Stage: &goodStage}.Validate())
}

func TestStatusUpdateFields(t *testing.T) {
	stage := StageQuoteSent
	priority := PriorityHigh
	assignee := "alex"

	fields := StatusUpdate{Stage: &stage, Priority: &priority, AssignedTo: &assignee}.Fields()

	assert.Equal(t, StageQuoteSent, fields["stage"])
	assert.Equal(t, PriorityHigh, fields["priority"])
	assert.Equal(t, "alex", fields["assignedTo"])
	assert.NotContains(t, fields, "status")
	assert.Len(t, fields, 3)
}
