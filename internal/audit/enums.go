package audit

// Status classifies how a question contributed to the score.
type Status string

const (
	StatusScored     Status = "SCORED"
	StatusNA         Status = "NA"
	StatusUnanswered Status = "UNANSWERED"
	StatusInvalid    Status = "INVALID"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScored, StatusNA, StatusUnanswered, StatusInvalid:
		return true
	}
	return false
}

// Counts toward the achievable total.
func (s Status) Scorable() bool {
	return s == StatusScored
}
