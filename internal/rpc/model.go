package rpc

type Category struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

type Article struct {
	Title string `json:"title"`
	// Description is null when the source sent none.
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

type Headlines struct {
	Category string   `json:"category"`
	Country  string   `json:"country,omitempty"`
	Articles Articles `json:"articles"`
}
