package model

type LedgerStats struct {
	Applications int
	Events       int
	ByStatus     map[string]int
}

func NewLedgerStats(applications ApplicationList, events EventList) LedgerStats {
	byStatus := make(map[string]int)
	for _, a := range applications {
		byStatus[a.Status]++
	}
	return LedgerStats{
		Applications: len(applications),
		Events:       len(events),
		ByStatus:     byStatus,
	}
}
