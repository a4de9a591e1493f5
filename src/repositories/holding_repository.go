package repositories

import (
	"context"
	"fmt"

	"walter/src/models"
	aws_handler "walter/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const usersStocksTableFormat = "UsersStocks-%s"

type HoldingRepository interface {
	GetStocksForUser(ctx context.Context, email string) ([]models.UserStock, error)
	PutUserStock(ctx context.Context, holding *models.UserStock) error
}

type holdingRepo struct {
	db    *aws_handler.DynamoDBHandler
	table string
}

func NewHoldingRepository(db *aws_handler.DynamoDBHandler, domain string) HoldingRepository {
	return &holdingRepo{
		db:    db,
		table: fmt.Sprintf(usersStocksTableFormat, domain),
	}
}

func (r *holdingRepo) GetStocksForUser(ctx context.Context, email string) ([]models.UserStock, error) {
	var holdings []models.UserStock
	values := map[string]*dynamodb.AttributeValue{
		":email": {S: aws.String(email)},
	}
	if err := r.db.QueryItems(ctx, r.table, "user_email = :email", values, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// PutUserStock upserts the user's position; the (user_email, symbol) key
// keeps one record per pair.
func (r *holdingRepo) PutUserStock(ctx context.Context, holding *models.UserStock) error {
	return r.db.PutItem(ctx, r.table, holding)
}
