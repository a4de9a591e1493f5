package aws_handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// ErrMalformedRecord is returned when a DynamoDB item does not unmarshal into
// the typed record a repository expects. Shape problems surface here, at the
// deserialization boundary, instead of as lookup failures later on.
var ErrMalformedRecord = errors.New("malformed record")

// ErrItemNotFound is returned by GetItem when no item exists under the key.
var ErrItemNotFound = errors.New("item not found")

type DynamoDBHandler struct {
	svc *dynamodb.DynamoDB
}

func NewDynamoDBHandler(svc *dynamodb.DynamoDB) *DynamoDBHandler {
	return &DynamoDBHandler{svc: svc}
}

// GetItem loads the item under key into out.
func (h *DynamoDBHandler) GetItem(ctx context.Context, table string, key map[string]*dynamodb.AttributeValue, out interface{}) error {
	result, err := h.svc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return err
	}
	if result.Item == nil {
		return fmt.Errorf("%w: table %q", ErrItemNotFound, table)
	}
	if err := dynamodbattribute.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("%w: table %q: %v", ErrMalformedRecord, table, err)
	}
	return nil
}

// PutItem writes record into table, overwriting any item under the same key.
func (h *DynamoDBHandler) PutItem(ctx context.Context, table string, record interface{}) error {
	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("%w: table %q: %v", ErrMalformedRecord, table, err)
	}
	_, err = h.svc.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return err
}

// ScanTable reads every item of table into out, a pointer to a slice.
func (h *DynamoDBHandler) ScanTable(ctx context.Context, table string, out interface{}) error {
	var items []map[string]*dynamodb.AttributeValue
	err := h.svc.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	if err != nil {
		return err
	}
	if err := dynamodbattribute.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("%w: table %q: %v", ErrMalformedRecord, table, err)
	}
	return nil
}

// QueryItems reads every item matching the key condition into out, a pointer
// to a slice.
func (h *DynamoDBHandler) QueryItems(ctx context.Context, table, keyCondition string, values map[string]*dynamodb.AttributeValue, out interface{}) error {
	var items []map[string]*dynamodb.AttributeValue
	err := h.svc.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    aws.String(keyCondition),
		ExpressionAttributeValues: values,
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	if err != nil {
		return err
	}
	if err := dynamodbattribute.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("%w: table %q: %v", ErrMalformedRecord, table, err)
	}
	return nil
}
