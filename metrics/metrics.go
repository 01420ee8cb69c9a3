package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SubmissionsCreated counts successful intakes by type and priority
var SubmissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "alex_submissions_created_total",
	Help: "Number of submissions successfully created",
}, []string{"type", "priority"})

// SubmissionsAutoUrgent counts creates escalated by the priority classifier
var SubmissionsAutoUrgent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "alex_submissions_auto_urgent_total",
	Help: "Number of submissions auto-classified as urgent",
})

// ValidationFailures counts rejected create/update payloads
var ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "alex_validation_failures_total",
	Help: "Number of payloads rejected by validation",
})

// NotificationFailures counts urgent-lead notifications that could not be sent
var NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "alex_notification_failures_total",
	Help: "Number of urgent-lead notifications that failed to send",
})

// FollowUpsTagged counts submissions tagged by the follow-up worker
var FollowUpsTagged = promauto.NewCounter(prometheus.CounterOpts{
	Name: "alex_followups_tagged_total",
	Help: "Number of submissions tagged as follow-up due by the worker",
})
