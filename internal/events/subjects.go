package events

const (
	StreamName   = "STRIKEPLAN_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectOptimizeCompleted(requestID string) string {
	return "strikeplan.optimize." + requestID + ".completed"
}

func SubjectOptimizeFailed(requestID string) string {
	return "strikeplan.optimize." + requestID + ".failed"
}
