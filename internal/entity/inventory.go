package entity

// InventoryItem is a virtual item owned by a user. Quantity is the number of copies held.
type InventoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity,omitempty"`
	Quantity int    `json:"quantity"`
}
