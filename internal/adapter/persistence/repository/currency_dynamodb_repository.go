package repository

import (
	"context"
	"errors"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCurrenciesTableName = "currencies"

type currencyItem struct {
	Code          string `dynamodbav:"code"`
	Name          string `dynamodbav:"name"`
	Symbol        string `dynamodbav:"symbol"`
	IsActive      bool   `dynamodbav:"is_active"`
	IsBase        bool   `dynamodbav:"is_base"`
	DecimalPlaces int    `dynamodbav:"decimal_places"`
	Description   string `dynamodbav:"description,omitempty"`
}

// CurrencyDynamoRepository persists Currency reference data in DynamoDB.
//
// Table requirements:
//   - PK: code (string, ISO 4217)

type CurrencyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICurrencyRepository = (*CurrencyDynamoRepository)(nil)

func NewCurrencyDynamoRepository(ddb *dynamodb.Client) *CurrencyDynamoRepository {
	return &CurrencyDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CURRENCIES_TABLE", defaultCurrenciesTableName),
	}
}

func (r *CurrencyDynamoRepository) Create(ctx context.Context, c entities.Currency) (entities.Currency, error) {
	av, err := attributevalue.MarshalMap(toCurrencyItem(c))
	if err != nil {
		return entities.Currency{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		return entities.Currency{}, err
	}
	return c, nil
}

func (r *CurrencyDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Currency, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Currency{}, err
	}
	if len(out.Item) == 0 {
		return entities.Currency{}, nil
	}

	var it currencyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Currency{}, err
	}
	return fromCurrencyItem(it), nil
}

func (r *CurrencyDynamoRepository) ListActive(ctx context.Context) ([]entities.Currency, error) {
	var currencies []entities.Currency
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("#is_active = :active"),
			ExpressionAttributeNames: map[string]string{
				"#is_active": "is_active",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it currencyItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			currencies = append(currencies, fromCurrencyItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return currencies, nil
}

func (r *CurrencyDynamoRepository) Update(ctx context.Context, c entities.Currency) (entities.Currency, error) {
	av, err := attributevalue.MarshalMap(toCurrencyItem(c))
	if err != nil {
		return entities.Currency{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Currency{}, nil
		}
		return entities.Currency{}, err
	}
	return c, nil
}

func toCurrencyItem(c entities.Currency) currencyItem {
	return currencyItem{
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		IsActive:      c.IsActive,
		IsBase:        c.IsBase,
		DecimalPlaces: c.DecimalPlaces,
		Description:   c.Description,
	}
}

func fromCurrencyItem(it currencyItem) entities.Currency {
	return entities.Currency{
		Code:          it.Code,
		Name:          it.Name,
		Symbol:        it.Symbol,
		IsActive:      it.IsActive,
		IsBase:        it.IsBase,
		DecimalPlaces: it.DecimalPlaces,
		Description:   it.Description,
	}
}
