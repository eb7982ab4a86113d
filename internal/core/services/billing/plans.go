package billing

// Plan is a purchasable subscription tier. The catalog is static; payments
// reference plans by ID.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
}

var plans = []Plan{
	{ID: "monthly", Name: "Monthly", Price: 9.99, DurationDays: 30},
	{ID: "quarterly", Name: "Quarterly", Price: 24.99, DurationDays: 90},
	{ID: "yearly", Name: "Yearly", Price: 79.99, DurationDays: 365},
}

// ListPlans returns the plan catalog.
func ListPlans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID returns the plan with the given ID, or false when unknown.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
