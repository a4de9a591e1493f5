package repositories

import (
	"context"
	"fmt"

	"walter/src/models"
	aws_handler "walter/src/utils/aws"
)

const stocksTableFormat = "Stocks-%s"

type StockRepository interface {
	ListStocks(ctx context.Context) ([]models.Stock, error)
	PutStock(ctx context.Context, stock *models.Stock) error
}

type stockRepo struct {
	db    *aws_handler.DynamoDBHandler
	table string
}

func NewStockRepository(db *aws_handler.DynamoDBHandler, domain string) StockRepository {
	return &stockRepo{
		db:    db,
		table: fmt.Sprintf(stocksTableFormat, domain),
	}
}

func (r *stockRepo) ListStocks(ctx context.Context) ([]models.Stock, error) {
	var stocks []models.Stock
	if err := r.db.ScanTable(ctx, r.table, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stockRepo) PutStock(ctx context.Context, stock *models.Stock) error {
	return r.db.PutItem(ctx, r.table, stock)
}
