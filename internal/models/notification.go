package models

// Notification is an in-app message for the signed-in user.
type Notification struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt Timestamp `json:"createdAt,omitempty"`
}

// UnreadIDs returns identifiers of unread notifications.
func UnreadIDs(items []Notification) []string {
	ids := make([]string, 0, len(items))
	for _, n := range items {
		if !n.IsRead && n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
