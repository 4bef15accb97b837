package shopping

// Item is a single shopping-list entry. The id and timestamp are assigned by
// the server on insert; the client never generates them.
type Item struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AddedAt string `json:"added_at"`
}
