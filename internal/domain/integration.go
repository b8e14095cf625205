package domain

// Integration is a third-party system an agent workflow can connect to.
type Integration struct {
	Meta
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}
