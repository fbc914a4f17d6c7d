package repository

import (
	"context"
	"errors"

	"tsmit_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// itemTable maps entity E to item I in one table keyed by "id".
type itemTable[E any, I any] struct {
	ddb      DynamoAPI
	name     string
	id       func(E) string
	toItem   func(E) I
	fromItem func(I) E
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (t *itemTable[E, I]) create(ctx context.Context, e E) (E, error) {
	var zero E
	av, err := attributevalue.MarshalMap(t.toItem(e))
	if err != nil {
		return zero, err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.name),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return zero, interfaces.ErrAlreadyExists
		}
		return zero, err
	}
	return e, nil
}

func (t *itemTable[E, I]) get(ctx context.Context, id string) (E, error) {
	var zero E
	out, err := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return zero, err
	}
	if len(out.Item) == 0 {
		return zero, nil
	}
	var it I
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return zero, err
	}
	return t.fromItem(it), nil
}

func (t *itemTable[E, I]) list(ctx context.Context) ([]E, error) {
	p := dynamodb.NewScanPaginator(t.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(t.name),
		ConsistentRead: aws.Bool(true),
	})
	out := []E{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []I
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, t.fromItem(it))
		}
	}
	return out, nil
}

// replace overwrites an existing item. A missing item yields a zero entity.
func (t *itemTable[E, I]) replace(ctx context.Context, e E) (E, error) {
	var zero E
	av, err := attributevalue.MarshalMap(t.toItem(e))
	if err != nil {
		return zero, err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.name),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return zero, nil
		}
		return zero, err
	}
	return e, nil
}

func (t *itemTable[E, I]) delete(ctx context.Context, id string) (bool, error) {
	out, err := t.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(t.name),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}
