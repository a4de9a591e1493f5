package schemas

type AddStockRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

type UserStockResponse struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

type NewsletterRunResponse struct {
	Status string `json:"status"`
}
