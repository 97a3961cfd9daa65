package booking

// PickEmployee selects the employee assigned to a new appointment from
// the schedule's eligible list. The current policy is first-in-list;
// keeping it behind this function lets a fairness-aware assignment
// replace it without touching the create flow.
func PickEmployee(eligible []uint) *uint {
	if len(eligible) == 0 {
		return nil
	}
	id := eligible[0]
	return &id
}
