package progress

import "github.com/edupanel/enrollcore/internal/model"

// Percent computes the overall progress percentage with round-half-up.
// A zero-module snapshot counts as fully completed.
func Percent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	return (completed*100 + total/2) / total
}

// DeriveStatus maps progress to the enrollment status. Dropped wins over
// everything else.
func DeriveStatus(percent int, dropped bool) model.EnrollmentStatus {
	switch {
	case dropped:
		return model.Dropped
	case percent == 0:
		return model.Enrolled
	case percent >= 100:
		return model.Completed
	default:
		return model.InProgress
	}
}
