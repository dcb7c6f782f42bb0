package rest

type Category struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

type Article struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

type HeadlinesResponse struct {
	Category string    `json:"category"`
	Country  string    `json:"country"`
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
}

type HeadlinesRequest struct {
	Category string `query:"category"`
	Country  string `query:"country"`
}
