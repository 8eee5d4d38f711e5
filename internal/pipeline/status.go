package pipeline

import (
	api "github.com/jobkeeper/application-tracker/api/v1alpha1"
)

// Pipeline decides whether an observed lifecycle event moves an
// application's status forward. Statuses are ordered stages; a new
// event only wins when it represents a later stage, with two
// exceptions: an offer always lands, and a rejection overrides
// everything except an accepted offer.
type Pipeline struct {
	order map[api.EventType]int
}

// DefaultOrder places the stages on the pipeline. Rejected sits past every
// regular stage and Other sits before Draft, so an unclassified event can
// never displace a real status.
func DefaultOrder() map[api.EventType]int {
	return map[api.EventType]int{
		api.EventTypeDraft:     0,
		api.EventTypeApplied:   1,
		api.EventTypeInterview: 2,
		api.EventTypeOffer:     3,
		api.EventTypeRejected:  99,
		api.EventTypeOther:     -1,
	}
}

func New(order map[api.EventType]int) *Pipeline {
	if order == nil {
		order = DefaultOrder()
	}
	return &Pipeline{order: order}
}

// ShouldUpdateStatus reports whether newStatus replaces current.
func (p *Pipeline) ShouldUpdateStatus(current, newStatus api.EventType) bool {
	if current == newStatus {
		return false
	}
	if newStatus == api.EventTypeRejected {
		return current != api.EventTypeOffer
	}
	if newStatus == api.EventTypeOffer {
		return true
	}
	return p.rank(newStatus) > p.rank(current)
}

func (p *Pipeline) rank(status api.EventType) int {
	if r, ok := p.order[status]; ok {
		return r
	}
	return -1
}
