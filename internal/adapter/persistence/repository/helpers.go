package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoAPI is the subset of *dynamodb.Client used by the repositories.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// Tables names the DynamoDB tables. Every table uses a string "id" partition
// key except Counters, keyed by "name".
type Tables struct {
	ServiceOrders string
	Statuses      string
	Roles         string
	Users         string
	Clients       string
	Services      string
	Counters      string
}

func DefaultTables() Tables {
	return Tables{
		ServiceOrders: "service_orders",
		Statuses:      "statuses",
		Roles:         "roles",
		Users:         "users",
		Clients:       "clients",
		Services:      "services",
		Counters:      "counters",
	}
}

// withDefaults fills empty names from DefaultTables.
func (t Tables) withDefaults() Tables {
	d := DefaultTables()
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}
	return Tables{
		ServiceOrders: pick(t.ServiceOrders, d.ServiceOrders),
		Statuses:      pick(t.Statuses, d.Statuses),
		Roles:         pick(t.Roles, d.Roles),
		Users:         pick(t.Users, d.Users),
		Clients:       pick(t.Clients, d.Clients),
		Services:      pick(t.Services, d.Services),
		Counters:      pick(t.Counters, d.Counters),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
