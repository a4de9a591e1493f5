package repositories

import (
	"context"
	"fmt"

	"walter/src/models"
	aws_handler "walter/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const usersTableFormat = "Users-%s"

type UserRepository interface {
	GetUser(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	PutUser(ctx context.Context, user *models.User) error
}

type userRepo struct {
	db    *aws_handler.DynamoDBHandler
	table string
}

func NewUserRepository(db *aws_handler.DynamoDBHandler, domain string) UserRepository {
	return &userRepo{
		db:    db,
		table: fmt.Sprintf(usersTableFormat, domain),
	}
}

func (r *userRepo) GetUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	key := map[string]*dynamodb.AttributeValue{
		"email": {S: aws.String(email)},
	}
	if err := r.db.GetItem(ctx, r.table, key, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers returns every subscribed user.
func (r *userRepo) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.ScanTable(ctx, r.table, &users); err != nil {
		return nil, err
	}
	subscribed := users[:0]
	for _, user := range users {
		if user.Subscribed {
			subscribed = append(subscribed, user)
		}
	}
	return subscribed, nil
}

func (r *userRepo) PutUser(ctx context.Context, user *models.User) error {
	return r.db.PutItem(ctx, r.table, user)
}
