package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionType categorizes what kind of request the lead sent in. It decides
// which nested detail block is semantically relevant; the others stay defaulted.
type SubmissionType string

const (
	SubmissionTypeMoving         SubmissionType = "moving"
	SubmissionTypeContact        SubmissionType = "contact"
	SubmissionTypeQuote          SubmissionType = "quote"
	SubmissionTypeServiceRequest SubmissionType = "service_request"
	SubmissionTypeOther          SubmissionType = "other"
)

// Stage represents the sales pipeline position of a submission
type Stage string

const (
	StageInitialDemand Stage = "Initial Demand"
	StageQuoteSent     Stage = "Quote Sent"
	StageWaiting       Stage = "Waiting"
	StageNegotiation   Stage = "Negotiation"
	StageWon           Stage = "Won"
	StageLost          Stage = "Lost"
)

// Status represents the operational workflow state of a submission record
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
	StatusSpam       Status = "spam"
)

// Priority represents the urgency classification of a submission
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Sentinel values used for nested detail fields the upstream parser could not
// fill in. Downstream consumers expect a present-but-marked-unknown value
// rather than a missing key.
const (
	SentinelNotFound     = "NOT FOUND"
	SentinelNotSpecified = "NOT SPECIFIED"
)

// DefaultSource is applied when the producer did not tag provenance
const DefaultSource = "direct"

// FlexTime accepts either an RFC3339 timestamp or a preformatted local-time
// string from heterogeneous upstream producers (n8n workflows send both).
// The raw form is preserved verbatim so nothing is lost in round-tripping.
type FlexTime struct {
	Time time.Time
	Raw  string
}

// NewFlexTime wraps a concrete point in time
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t}
}

// ParseFlexTime keeps the raw string and parses it as RFC3339 when possible
func ParseFlexTime(s string) FlexTime {
	ft := FlexTime{Raw: s}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		ft.Time = t
	}
	return ft
}

// IsZero reports whether no value was ever supplied
func (ft FlexTime) IsZero() bool {
	return ft.Raw == "" && ft.Time.IsZero()
}

// String returns the raw upstream form when present, RFC3339 otherwise
func (ft FlexTime) String() string {
	if ft.Raw != "" {
		return ft.Raw
	}
	if ft.Time.IsZero() {
		return ""
	}
	return ft.Time.Format(time.RFC3339)
}

// MarshalJSON emits the upstream string unchanged when one was given
func (ft FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ft.String())
}

// UnmarshalJSON accepts a quoted timestamp or free-form string
func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ft = FlexTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*ft = FlexTime{}
		return nil
	}
	*ft = ParseFlexTime(s)
	return nil
}

// MarshalBSONValue stores the flexible timestamp as a plain string
func (ft FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(ft.String())
}

// UnmarshalBSONValue reads back either a string or a native datetime
func (ft *FlexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err == nil {
		*ft = ParseFlexTime(s)
		return nil
	}
	var tm time.Time
	if err := bson.UnmarshalValue(t, data, &tm); err != nil {
		return err
	}
	ft.Time = tm
	ft.Raw = ""
	return nil
}

// MovingDetails carries the moving-quote specifics parsed from the request
type MovingDetails struct {
	MovingDate      string `json:"movingDate" bson:"movingDate"`
	PickupAddress   string `json:"pickupAddress" bson:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress" bson:"deliveryAddress"`
	ResidenceSize   string `json:"residenceSize" bson:"residenceSize"`
	SpecialItems    string `json:"specialItems" bson:"specialItems"`
}

// ContactDetails carries contact preferences for plain inquiries
type ContactDetails struct {
	PreferredMethod string `json:"preferredMethod" bson:"preferredMethod"`
	BestTimeToCall  string `json:"bestTimeToCall" bson:"bestTimeToCall"`
	Language        string `json:"language" bson:"language"`
}

// ServiceDetails carries specifics for service requests
type ServiceDetails struct {
	ServiceType   string `json:"serviceType" bson:"serviceType"`
	PreferredDate string `json:"preferredDate" bson:"preferredDate"`
	Description   string `json:"description" bson:"description"`
}

// SubmissionMetadata is the operational envelope recorded at ingest time
type SubmissionMetadata struct {
	ProcessedAt      string   `json:"processedAt" bson:"processedAt"`
	RawInput         string   `json:"rawInput,omitempty" bson:"rawInput,omitempty"`
	ProcessingErrors []string `json:"processingErrors" bson:"processingErrors"`
	Tags             []string `json:"tags" bson:"tags"`
	IPAddress        string   `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent        string   `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
}

// Submission is one intake record representing a lead/inquiry. Each record is
// a self-contained aggregate: no cross-entity references, no cascade concerns.
type Submission struct {
	ID                 primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string                 `json:"name" bson:"name" validate:"required"`
	Email              string                 `json:"email" bson:"email" validate:"required,email"`
	Phone              string                 `json:"phone,omitempty" bson:"phone,omitempty"`
	Message            string                 `json:"message,omitempty" bson:"message,omitempty"`
	DateOfFirstContact FlexTime               `json:"dateOfFirstContact" bson:"dateOfFirstContact"`
	SubmissionType     SubmissionType         `json:"submissionType" bson:"submissionType" validate:"oneof=moving contact quote service_request other"`
	Stage              Stage                  `json:"stage" bson:"stage" validate:"oneof='Initial Demand' 'Quote Sent' Waiting Negotiation Won Lost"`
	Source             string                 `json:"source" bson:"source"`
	Status             Status                 `json:"status" bson:"status" validate:"oneof=new in_progress completed archived spam"`
	Priority           Priority               `json:"priority" bson:"priority" validate:"oneof=low medium high urgent"`
	MovingDetails      *MovingDetails         `json:"movingDetails" bson:"movingDetails"`
	ContactDetails     *ContactDetails        `json:"contactDetails" bson:"contactDetails"`
	ServiceDetails     *ServiceDetails        `json:"serviceDetails" bson:"serviceDetails"`
	CustomFields       map[string]interface{} `json:"customFields" bson:"customFields"`
	Metadata           SubmissionMetadata     `json:"metadata" bson:"metadata"`
	AssignedTo         string                 `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	InternalNotes      []string               `json:"internalNotes,omitempty" bson:"internalNotes,omitempty"`
	FollowUpDate       *time.Time             `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	LastContactDate    *time.Time             `json:"lastContactDate,omitempty" bson:"lastContactDate,omitempty"`
	Tags               []string               `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt          time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt" bson:"updatedAt"`
}

var validate = validator.New()

// Normalize trims free-text fields, lowercases the email and applies the
// documented defaults for every absent field, including materializing the
// nested detail blocks with sentinel values. Safe to call more than once.
func (s *Submission) Normalize(now time.Time) {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.Message = strings.TrimSpace(s.Message)
	s.Source = strings.TrimSpace(s.Source)
	s.AssignedTo = strings.TrimSpace(s.AssignedTo)

	if s.SubmissionType == "" {
		s.SubmissionType = SubmissionTypeOther
	}
	if s.Stage == "" {
		s.Stage = StageInitialDemand
	}
	if s.Status == "" {
		s.Status = StatusNew
	}
	if s.Priority == "" {
		s.Priority = PriorityMedium
	}
	if s.Source == "" {
		s.Source = DefaultSource
	}
	if s.DateOfFirstContact.IsZero() {
		s.DateOfFirstContact = NewFlexTime(now)
	}

	if s.MovingDetails == nil {
		s.MovingDetails = &MovingDetails{}
	}
	applySentinels(&s.MovingDetails.MovingDate, SentinelNotFound)
	applySentinels(&s.MovingDetails.PickupAddress, SentinelNotFound)
	applySentinels(&s.MovingDetails.DeliveryAddress, SentinelNotFound)
	applySentinels(&s.MovingDetails.ResidenceSize, SentinelNotSpecified)
	applySentinels(&s.MovingDetails.SpecialItems, SentinelNotSpecified)

	if s.ContactDetails == nil {
		s.ContactDetails = &ContactDetails{}
	}
	applySentinels(&s.ContactDetails.PreferredMethod, SentinelNotSpecified)
	applySentinels(&s.ContactDetails.BestTimeToCall, SentinelNotSpecified)
	applySentinels(&s.ContactDetails.Language, SentinelNotSpecified)

	if s.ServiceDetails == nil {
		s.ServiceDetails = &ServiceDetails{}
	}
	applySentinels(&s.ServiceDetails.ServiceType, SentinelNotSpecified)
	applySentinels(&s.ServiceDetails.PreferredDate, SentinelNotFound)
	applySentinels(&s.ServiceDetails.Description, SentinelNotSpecified)

	// A fresh map per record; never a shared default.
	if s.CustomFields == nil {
		s.CustomFields = map[string]interface{}{}
	}
	if s.Metadata.ProcessedAt == "" {
		s.Metadata.ProcessedAt = now.Format("2006-01-02 15:04:05")
	}
	if s.Metadata.ProcessingErrors == nil {
		s.Metadata.ProcessingErrors = []string{}
	}
	if s.Metadata.Tags == nil {
		s.Metadata.Tags = []string{}
	}
}

func applySentinels(field *string, sentinel string) {
	*field = strings.TrimSpace(*field)
	if *field == "" {
		*field = sentinel
	}
}

// Validate checks the normalized record and returns one message per failed
// field. Normalize must run first so enum defaults are in place.
func (s *Submission) Validate() []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "oneof":
			msgs = append(msgs, fe.Field()+" has an invalid value")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return msgs
}

// StatusUpdate is the whitelisted subset of fields the partial-update and
// bulk-update endpoints may touch. Anything else in the body is ignored.
type StatusUpdate struct {
	Stage      *Stage    `json:"stage,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	AssignedTo *string   `json:"assignedTo,omitempty"`
}

// IsEmpty reports whether the update would touch nothing
func (u StatusUpdate) IsEmpty() bool {
	return u.Stage == nil && u.Status == nil && u.Priority == nil && u.AssignedTo == nil
}

// Validate rejects unknown enum values before they reach storage
func (u StatusUpdate) Validate() []string {
	var msgs []string
	if u.Stage != nil {
		switch *u.Stage {
		case StageInitialDemand, StageQuoteSent, StageWaiting, StageNegotiation, StageWon, StageLost:
		default:
			msgs = append(msgs, "stage has an invalid value")
		}
	}
	if u.Status != nil {
		switch *u.Status {
		case StatusNew, StatusInProgress, StatusCompleted, StatusArchived, StatusSpam:
		default:
			msgs = append(msgs, "status has an invalid value")
		}
	}
	if u.Priority != nil {
		switch *u.Priority {
		case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		default:
			msgs = append(msgs, "priority has an invalid value")
		}
	}
	return msgs
}

// Fields flattens the update into the document fields to set
func (u StatusUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Stage != nil {
		fields["stage"] = *u.Stage
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.Priority != nil {
		fields["priority"] = *u.Priority
	}
	if u.AssignedTo != nil {
		fields["assignedTo"] = strings.TrimSpace(*u.AssignedTo)
	}
	return fields
}

// BulkStatusUpdateRequest applies one StatusUpdate to many submissions
type BulkStatusUpdateRequest struct {
	IDs     []string     `json:"ids"`
	Updates StatusUpdate `json:"updates"`
}

// SubmissionSummary is the projection used for the dashboard recent list
type SubmissionSummary struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	SubmissionType SubmissionType     `json:"submissionType" bson:"submissionType"`
	Stage          Stage              `json:"stage" bson:"stage"`
	Status         Status             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}
