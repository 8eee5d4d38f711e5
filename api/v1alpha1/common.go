package v1alpha1

func StringToEventType(s string) EventType {
	switch s {
	case string(EventTypeDraft):
		return EventTypeDraft
	case string(EventTypeApplied):
		return EventTypeApplied
	case string(EventTypeInterview):
		return EventTypeInterview
	case string(EventTypeOffer):
		return EventTypeOffer
	case string(EventTypeRejected):
		return EventTypeRejected
	default:
		return EventTypeOther
	}
}

func StringToConfidence(s string) Confidence {
	switch s {
	case string(ConfidenceHigh):
		return ConfidenceHigh
	case string(ConfidenceMedium):
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
