package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type tutorItem struct {
	TutorID      string   `dynamodbav:"tutor_id"`
	Name         string   `dynamodbav:"name"`
	Subjects     []string `dynamodbav:"subjects"`
	HourlyRate   float64  `dynamodbav:"hourly_rate"`
	Rating       float64  `dynamodbav:"rating"`
	Availability string   `dynamodbav:"availability"`
	Bio          string   `dynamodbav:"bio,omitempty"`
}

type TutorRepository struct {
	client API
	table  string
}

func NewTutorRepo(client API, table string) *TutorRepository {
	return &TutorRepository{client: client, table: table}
}

func (r *TutorRepository) GetTutor(ctx context.Context, id string) (*domain.Tutor, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       map[string]types.AttributeValue{"tutor_id": str(id)},
	})
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrTutorNotFound
	}
	return unmarshalTutor(out.Item)
}

func (r *TutorRepository) ListTutors(ctx context.Context) ([]*domain.Tutor, error) {
	var (
		res   []*domain.Tutor
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("scan tutors: %w", err)
		}
		for _, item := range out.Items {
			t, err := unmarshalTutor(item)
			if err != nil {
				return nil, err
			}
			res = append(res, t)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func unmarshalTutor(av map[string]types.AttributeValue) (*domain.Tutor, error) {
	var item tutorItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal tutor: %w", err)
	}
	return &domain.Tutor{
		ID:           item.TutorID,
		Name:         item.Name,
		Subjects:     item.Subjects,
		HourlyRate:   decimal.NewFromFloat(item.HourlyRate),
		Rating:       item.Rating,
		Availability: item.Availability,
		Bio:          item.Bio,
	}, nil
}
