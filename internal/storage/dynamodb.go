package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"car-rental/internal/rental"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI interface for mocking
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBInventoryStorage keeps car types and cars in two tables, keyed by
// "name" and "id" respectively.
type DynamoDBInventoryStorage struct {
	client        DynamoDBAPI
	carTypesTable string
	carsTable     string
}

func NewDynamoDBInventoryStorage(client DynamoDBAPI, carTypesTable, carsTable string) *DynamoDBInventoryStorage {
	return &DynamoDBInventoryStorage{
		client:        client,
		carTypesTable: carTypesTable,
		carsTable:     carsTable,
	}
}

func (d *DynamoDBInventoryStorage) CreateCarType(ctx context.Context, carType *rental.CarType) error {
	item, err := attributevalue.MarshalMap(carType)
	if err != nil {
		return fmt.Errorf("failed to marshal car type: %w", err)
	}

	// "name" is a DynamoDB reserved word
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.carTypesTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#name)"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
	})
	if err != nil {
		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) {
			return fmt.Errorf("car type %s already exists", carType.Name)
		}
		return fmt.Errorf("failed to put car type: %w", err)
	}

	return nil
}

func (d *DynamoDBInventoryStorage) CreateCar(ctx context.Context, car *rental.Car) error {
	item, err := attributevalue.MarshalMap(car)
	if err != nil {
		return fmt.Errorf("failed to marshal car: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.carsTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) {
			return fmt.Errorf("car %d already exists", car.ID)
		}
		return fmt.Errorf("failed to put car: %w", err)
	}

	return nil
}

func (d *DynamoDBInventoryStorage) GetAllCarTypes(ctx context.Context) ([]*rental.CarType, error) {
	items, err := d.scanAll(ctx, d.carTypesTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan car types: %w", err)
	}

	carTypes := make([]*rental.CarType, 0, len(items))
	for _, item := range items {
		var carType rental.CarType
		if err := attributevalue.UnmarshalMap(item, &carType); err != nil {
			return nil, fmt.Errorf("failed to unmarshal car type: %w", err)
		}
		carTypes = append(carTypes, &carType)
	}

	sort.Slice(carTypes, func(i, j int) bool { return carTypes[i].Name < carTypes[j].Name })
	return carTypes, nil
}

func (d *DynamoDBInventoryStorage) GetAllCars(ctx context.Context) ([]*rental.Car, error) {
	items, err := d.scanAll(ctx, d.carsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cars: %w", err)
	}

	cars := make([]*rental.Car, 0, len(items))
	for _, item := range items {
		var car rental.Car
		if err := attributevalue.UnmarshalMap(item, &car); err != nil {
			return nil, fmt.Errorf("failed to unmarshal car: %w", err)
		}
		cars = append(cars, &car)
	}

	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars, nil
}

// scanAll follows LastEvaluatedKey until the table is exhausted
func (d *DynamoDBInventoryStorage) scanAll(ctx context.Context, table string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}

		items = append(items, result.Items...)
		if len(result.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = result.LastEvaluatedKey
	}
}
