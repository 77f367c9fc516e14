package events

// subjects maps event types to the NATS subjects they are forwarded on
var subjects = map[EventType]string{
	EventTypeBalanceChange:     "economy.balance_changed",
	EventTypeUserCreated:       "economy.user_created",
	EventTypeChallengeResolved: "challenges.resolved",
	EventTypeChallengeExpired:  "challenges.expired",
}

// SubjectFor returns the NATS subject for an event type
func SubjectFor(eventType EventType) string {
	if subject, ok := subjects[eventType]; ok {
		return subject
	}
	return "economy.unknown." + string(eventType)
}
