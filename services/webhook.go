package services

import (
	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/tidwall/gjson"
)

// WebhookSource tags submissions arriving through the workflow-automation
// webhook rather than the regular form endpoint.
const WebhookSource = "n8n"

// knownWebhookKeys are mapped onto explicit submission fields; every other
// top-level key is preserved under customFields so nothing a workflow sends
// is lost.
var knownWebhookKeys = map[string]bool{
	"name": true, "fullName": true, "email": true, "phone": true,
	"message": true, "body": true, "text": true,
	"submissionType": true, "type": true, "stage": true, "source": true,
	"status": true, "priority": true, "dateOfFirstContact": true,
	"movingDetails": true, "contactDetails": true, "serviceDetails": true,
	"customFields": true, "metadata": true,
}

func firstString(json gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := json.Get(path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// ParseWebhookPayload leniently extracts a submission from an arbitrary
// workflow-automation payload. Field shapes vary between workflows, so known
// aliases are tried in order and anything unrecognized lands in customFields.
// Parse problems are recorded as processing errors instead of failing the
// intake; required-field validation still happens in Create.
func ParseWebhookPayload(raw []byte) *models.Submission {
	json := gjson.ParseBytes(raw)
	sub := &models.Submission{}

	sub.Name = firstString(json, "name", "fullName", "contact.name")
	sub.Email = firstString(json, "email", "contact.email", "emailAddress")
	sub.Phone = firstString(json, "phone", "contact.phone", "phoneNumber")
	sub.Message = firstString(json, "message", "body", "text")

	sub.SubmissionType = models.SubmissionType(firstString(json, "submissionType", "type"))
	sub.Stage = models.Stage(json.Get("stage").String())
	sub.Status = models.Status(json.Get("status").String())
	sub.Priority = models.Priority(json.Get("priority").String())

	sub.Source = firstString(json, "source")
	if sub.Source == "" {
		sub.Source = WebhookSource
	}

	if v := json.Get("dateOfFirstContact"); v.Exists() && v.String() != "" {
		sub.DateOfFirstContact = models.ParseFlexTime(v.String())
	}

	if v := json.Get("movingDetails"); v.IsObject() {
		sub.MovingDetails = &models.MovingDetails{
			MovingDate:      v.Get("movingDate").String(),
			PickupAddress:   v.Get("pickupAddress").String(),
			DeliveryAddress: v.Get("deliveryAddress").String(),
			ResidenceSize:   v.Get("residenceSize").String(),
			SpecialItems:    v.Get("specialItems").String(),
		}
	}
	if v := json.Get("contactDetails"); v.IsObject() {
		sub.ContactDetails = &models.ContactDetails{
			PreferredMethod: v.Get("preferredMethod").String(),
			BestTimeToCall:  v.Get("bestTimeToCall").String(),
			Language:        v.Get("language").String(),
		}
	}
	if v := json.Get("serviceDetails"); v.IsObject() {
		sub.ServiceDetails = &models.ServiceDetails{
			ServiceType:   v.Get("serviceType").String(),
			PreferredDate: v.Get("preferredDate").String(),
			Description:   v.Get("description").String(),
		}
	}

	sub.CustomFields = map[string]interface{}{}
	if v := json.Get("customFields"); v.IsObject() {
		v.ForEach(func(key, value gjson.Result) bool {
			sub.CustomFields[key.String()] = value.Value()
			return true
		})
	}

	// Unrecognized top-level keys round-trip through customFields.
	if json.IsObject() {
		json.ForEach(func(key, value gjson.Result) bool {
			if !knownWebhookKeys[key.String()] {
				sub.CustomFields[key.String()] = value.Value()
			}
			return true
		})
	} else {
		sub.Metadata.ProcessingErrors = append(sub.Metadata.ProcessingErrors, "payload is not a JSON object")
	}

	if sub.Name == "" {
		sub.Metadata.ProcessingErrors = append(sub.Metadata.ProcessingErrors, "name not found in payload")
	}
	if sub.Email == "" {
		sub.Metadata.ProcessingErrors = append(sub.Metadata.ProcessingErrors, "email not found in payload")
	}

	return sub
}
