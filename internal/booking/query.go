package booking

// GetUserAppointmentsQuery encapsulates the read criteria for a user's
// appointment list.
type GetUserAppointmentsQuery struct {
	UserId    int64
	Status    string // empty means all statuses
	OrderBy   string // whitelisted column, defaults to scheduled_at
	OrderDesc bool
	Limit     int // <= 0 means no limit
}

var appointmentOrderColumns = map[string]string{
	"id":           "id",
	"scheduled_at": "scheduled_at",
	"status":       "status",
	"total_price":  "total_price",
	"created_at":   "created_at",
}

// OrderClause resolves the ORDER BY fragment, falling back to
// scheduled_at for unknown columns.
func (q GetUserAppointmentsQuery) OrderClause() string {
	col, ok := appointmentOrderColumns[q.OrderBy]
	if !ok {
		col = "scheduled_at"
	}
	if q.OrderDesc {
		return col + " DESC"
	}
	return col + " ASC"
}
