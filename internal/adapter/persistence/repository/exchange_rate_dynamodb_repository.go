package repository

import (
	"context"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultExchangeRatesTableName = "exchange_rates"
	exchangeRatesPairIndex        = "pair-index"
)

type exchangeRateItem struct {
	ID            string `dynamodbav:"id"`
	Pair          string `dynamodbav:"pair"`
	FromCurrency  string `dynamodbav:"from_currency"`
	ToCurrency    string `dynamodbav:"to_currency"`
	Rate          string `dynamodbav:"rate"`
	EffectiveDate string `dynamodbav:"effective_date"`
	Source        string `dynamodbav:"source"`
	IsActive      bool   `dynamodbav:"is_active"`
	ExpiryDate    string `dynamodbav:"expiry_date,omitempty"`
	CreatedBy     string `dynamodbav:"created_by"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// ExchangeRateDynamoRepository reads the append-only exchange rate ledger.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: pair-index (PK: pair = "FROM#TO", SK: effective_date)
//
// effective_date persists as RFC3339Nano, so the index sort order is the
// chronological order.

type ExchangeRateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IExchangeRateRepository = (*ExchangeRateDynamoRepository)(nil)

func NewExchangeRateDynamoRepository(ddb *dynamodb.Client) *ExchangeRateDynamoRepository {
	return &ExchangeRateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("EXCHANGE_RATES_TABLE", defaultExchangeRatesTableName),
	}
}

// GetActiveByPair returns the most recent active record for a directed
// pair, or the zero value when none exists.
func (r *ExchangeRateDynamoRepository) GetActiveByPair(ctx context.Context, from, to string) (entities.ExchangeRate, error) {
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.queryPairPage(ctx, from, to, startKey)
		if err != nil {
			return entities.ExchangeRate{}, err
		}
		for _, item := range out.Items {
			var it exchangeRateItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return entities.ExchangeRate{}, err
			}
			if it.IsActive {
				return fromExchangeRateItem(it), nil
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return entities.ExchangeRate{}, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// ListByPair returns up to limit records for a pair, newest first, active
// and inactive alike.
func (r *ExchangeRateDynamoRepository) ListByPair(ctx context.Context, from, to string, limit int) ([]entities.ExchangeRate, error) {
	var rates []entities.ExchangeRate
	var startKey map[string]types.AttributeValue

	for len(rates) < limit {
		out, err := r.queryPairPage(ctx, from, to, startKey)
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var it exchangeRateItem
			if err := attributevalue.UnmarshalMap(item, &it); err != nil {
				return nil, err
			}
			rates = append(rates, fromExchangeRateItem(it))
			if len(rates) == limit {
				break
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return rates, nil
}

func (r *ExchangeRateDynamoRepository) queryPairPage(ctx context.Context, from, to string, startKey map[string]types.AttributeValue) (*dynamodb.QueryOutput, error) {
	return r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(exchangeRatesPairIndex),
		KeyConditionExpression: aws.String("#pair = :pair"),
		ExpressionAttributeNames: map[string]string{
			"#pair": "pair",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pair": &types.AttributeValueMemberS{Value: ratePairKey(from, to)},
		},
		ScanIndexForward:  aws.Bool(false),
		ExclusiveStartKey: startKey,
	})
}

func ratePairKey(from, to string) string {
	return from + "#" + to
}

func toExchangeRateItem(e entities.ExchangeRate) exchangeRateItem {
	return exchangeRateItem{
		ID:            e.ID,
		Pair:          ratePairKey(e.FromCurrency, e.ToCurrency),
		FromCurrency:  e.FromCurrency,
		ToCurrency:    e.ToCurrency,
		Rate:          e.Rate.String(),
		EffectiveDate: formatTime(e.EffectiveDate),
		Source:        string(e.Source),
		IsActive:      e.IsActive,
		ExpiryDate:    formatTimePtr(e.ExpiryDate),
		CreatedBy:     e.CreatedBy,
		CreatedAt:     formatTime(e.CreatedAt),
	}
}

func fromExchangeRateItem(it exchangeRateItem) entities.ExchangeRate {
	return entities.ExchangeRate{
		ID:            it.ID,
		FromCurrency:  it.FromCurrency,
		ToCurrency:    it.ToCurrency,
		Rate:          parseDecimal(it.Rate),
		EffectiveDate: parseTime(it.EffectiveDate),
		Source:        entities.RateSource(it.Source),
		IsActive:      it.IsActive,
		ExpiryDate:    parseTimePtr(it.ExpiryDate),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     parseTime(it.CreatedAt),
	}
}
