package repository

import (
	"context"
	"errors"
	"testing"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDynamoRepository(t *testing.T) {
	ctx := context.Background()
	status := entities.Status{ID: "st-1", Name: "Delivered", Color: "#0a0", Position: 4, TriggersEmail: true, IsFinal: true}
	item, err := attributevalue.MarshalMap(statusItem(status))
	require.NoError(t, err)

	ddb := &fakeDynamo{
		getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		},
		scan: func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{item}}, nil
		},
		deleteItem: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			assert.Equal(t, types.ReturnValueAllOld, in.ReturnValues)
			return &dynamodb.DeleteItemOutput{Attributes: item}, nil
		},
	}
	repo := NewStatusDynamoRepository(ddb, Tables{Statuses: "st_table"})

	_, err = repo.Create(ctx, status)
	require.NoError(t, err)
	assert.Equal(t, "st_table", aws.ToString(ddb.lastPut.TableName))

	got, err := repo.GetByID(ctx, "st-1")
	require.NoError(t, err)
	assert.Equal(t, status, got)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Status{status}, list)

	found, err := repo.Delete(ctx, "st-1")
	require.NoError(t, err)
	assert.True(t, found)

	ddb.putItem = func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	updated, err := repo.Update(ctx, status)
	require.NoError(t, err)
	assert.Empty(t, updated.ID)
	assert.Equal(t, "attribute_exists(#id)", aws.ToString(ddb.lastPut.ConditionExpression))

	_, err = repo.Create(ctx, status)
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)
}

func TestRoleDynamoRepository_Permissions(t *testing.T) {
	ctx := context.Background()
	role := entities.Role{ID: "r-1", Name: "Analyst", Permissions: map[string][]string{"service-orders": {"create", "update"}}}
	item, err := attributevalue.MarshalMap(roleItem(role))
	require.NoError(t, err)

	ddb := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: item}, nil
	}}
	repo := NewRoleDynamoRepository(ddb, Tables{})

	got, err := repo.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, role, got)

	_, err = repo.Create(ctx, entities.Role{ID: "r-2", Name: "Empty"})
	require.NoError(t, err)
	_, ok := ddb.lastPut.Item["permissions"].(*types.AttributeValueMemberM)
	assert.True(t, ok, "nil permissions must be stored as an empty map")
}

func TestCatalogDynamoRepositories_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	ddb := &fakeDynamo{
		getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) { return nil, boom },
		scan:    func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) { return nil, boom },
		deleteItem: func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			return &dynamodb.DeleteItemOutput{}, nil
		},
	}

	users := NewUserDynamoRepository(ddb, Tables{})
	_, err := users.GetByID(ctx, "u-1")
	assert.ErrorIs(t, err, boom)

	clients := NewClientDynamoRepository(ddb, Tables{})
	_, err = clients.List(ctx)
	assert.ErrorIs(t, err, boom)

	services := NewServiceDynamoRepository(ddb, Tables{})
	found, err := services.Delete(ctx, "svc-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClientDynamoRepository_ServiceIDsRoundTrip(t *testing.T) {
	ctx := context.Background()
	ddb := &fakeDynamo{}
	repo := NewClientDynamoRepository(ddb, Tables{})

	client := entities.Client{ID: "c-1", Name: "ACME", ServiceIDs: []string{"svc-1", "svc-2"}}
	_, err := repo.Create(ctx, client)
	require.NoError(t, err)
	require.Contains(t, ddb.lastPut.Item, "service_ids")

	stored := ddb.lastPut.Item
	ddb.getItem = func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{Item: stored}, nil
	}
	got, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, client, got)
}
