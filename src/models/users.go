package models

import "time"

type User struct {
	Email        string    `dynamodbav:"email"`
	Username     string    `dynamodbav:"username"`
	PasswordHash string    `dynamodbav:"password_hash"`
	Subscribed   bool      `dynamodbav:"subscribed"`
	CreatedAt    time.Time `dynamodbav:"created_at,unixtime"`
}
