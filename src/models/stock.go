package models

// Stock is a security tracked by the platform, independent of any single
// user's holdings. Prices are fetched for every tracked stock on each
// newsletter run.
type Stock struct {
	Symbol  string `dynamodbav:"symbol"`
	Company string `dynamodbav:"company"`
}
