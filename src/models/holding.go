package models

// UserStock is one user's position in a tracked stock. There is at most one
// record per (user_email, symbol) pair; the table key guarantees it.
type UserStock struct {
	UserEmail string  `dynamodbav:"user_email"`
	Symbol    string  `dynamodbav:"symbol"`
	Quantity  float64 `dynamodbav:"quantity"`
}
