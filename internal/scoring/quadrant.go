package scoring

// Quadrant is an Eisenhower matrix cell.
type Quadrant string

const (
	QuadrantTop       Quadrant = "Q1_TOP"       // Urgent and important
	QuadrantUrgent    Quadrant = "Q2_URGENT"    // Urgent, not important
	QuadrantImportant Quadrant = "Q3_IMPORTANT" // Important, not urgent
	QuadrantLow       Quadrant = "Q4_LOW"       // Neither
)

// Quadrants lists every quadrant in matrix order.
var Quadrants = []Quadrant{QuadrantTop, QuadrantUrgent, QuadrantImportant, QuadrantLow}

// Classify places a scored task in the Eisenhower matrix. A task is
// important when its rating reaches importantThreshold and urgent when it
// is due within urgencyThreshold days (overdue counts as urgent).
func Classify(b Breakdown, importantThreshold, urgencyThreshold int) Quadrant {
	important := b.Importance >= importantThreshold
	urgent := b.DaysUntilDue <= urgencyThreshold

	switch {
	case urgent && important:
		return QuadrantTop
	case urgent:
		return QuadrantUrgent
	case important:
		return QuadrantImportant
	default:
		return QuadrantLow
	}
}
