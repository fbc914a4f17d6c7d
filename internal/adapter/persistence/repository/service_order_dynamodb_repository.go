package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const serviceOrderCounter = "service_orders"

type userRefItem struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

type statusRefItem struct {
	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

type statusHistoryItem struct {
	From      statusRefItem `dynamodbav:"from_status"`
	To        statusRefItem `dynamodbav:"to_status"`
	CreatedAt string        `dynamodbav:"created_at"`
	User      userRefItem   `dynamodbav:"user"`
	Note      string        `dynamodbav:"note"`
}

type editHistoryItem struct {
	Field     string      `dynamodbav:"field"`
	OldValue  string      `dynamodbav:"old_value"`
	NewValue  string      `dynamodbav:"new_value"`
	CreatedAt string      `dynamodbav:"created_at"`
	User      userRefItem `dynamodbav:"user"`
}

type clientSnapshotItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

type contactItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

type equipmentItem struct {
	Type         string `dynamodbav:"type"`
	Brand        string `dynamodbav:"brand"`
	Model        string `dynamodbav:"model"`
	SerialNumber string `dynamodbav:"serial_number"`
}

type contractedServiceItem struct {
	ServiceID   string `dynamodbav:"service_id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
}

type serviceOrderItem struct {
	ID                  string                  `dynamodbav:"id"`
	OrderNumber         int64                   `dynamodbav:"order_number"`
	ClientID            string                  `dynamodbav:"client_id"`
	ClientSnapshot      clientSnapshotItem      `dynamodbav:"client_snapshot"`
	Contact             contactItem             `dynamodbav:"contact"`
	Equipment           equipmentItem           `dynamodbav:"equipment"`
	ReportedProblem     string                  `dynamodbav:"reported_problem"`
	Analyst             userRefItem             `dynamodbav:"analyst"`
	ContractedServices  []contractedServiceItem `dynamodbav:"contracted_services"`
	StatusID            string                  `dynamodbav:"status_id"`
	TechnicalSolution   string                  `dynamodbav:"technical_solution"`
	Note                string                  `dynamodbav:"note"`
	ConfirmedServiceIDs []string                `dynamodbav:"confirmed_service_ids"`
	StatusHistory       []statusHistoryItem     `dynamodbav:"status_history"`
	EditHistory         []editHistoryItem       `dynamodbav:"edit_history"`
	CreatedAt           string                  `dynamodbav:"created_at"`
	UpdatedAt           string                  `dynamodbav:"updated_at"`
	Version             int64                   `dynamodbav:"version"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities in DynamoDB.
//
// Table requirements:
//   - service orders: PK id (string)
//   - counters: PK name (string), numeric attribute "value"
//
// Transitions and edits are single UpdateItem calls conditioned on the
// stored version; the history lists only ever grow through list_append.
type ServiceOrderDynamoRepository struct {
	ddb      DynamoAPI
	table    string
	counters string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb DynamoAPI, tables Tables) *ServiceOrderDynamoRepository {
	tables = tables.withDefaults()
	return &ServiceOrderDynamoRepository{ddb: ddb, table: tables.ServiceOrders, counters: tables.Counters}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	av, err := attributevalue.MarshalMap(toServiceOrderItem(o))
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceOrder{}, interfaces.ErrAlreadyExists
		}
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}
	return unmarshalServiceOrder(out.Item)
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.table),
		ConsistentRead: aws.Bool(true),
	})
	orders := []entities.ServiceOrder{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []serviceOrderItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			orders = append(orders, fromServiceOrderItem(it))
		}
	}
	return orders, nil
}

// NextOrderNumber atomically increments the service order counter.
func (r *ServiceOrderDynamoRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.counters),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: serviceOrderCounter},
		},
		UpdateExpression:          aws.String("ADD #value :one"),
		ExpressionAttributeNames:  map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: missing value", serviceOrderCounter)
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

func (r *ServiceOrderDynamoRepository) ApplyTransition(ctx context.Context, id string, expectedVersion int64, commit entities.TransitionCommit) (entities.ServiceOrder, error) {
	entry, err := attributevalue.Marshal(toStatusHistoryItem(commit.Entry))
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	expr := "SET #status_id = :status_id, #status_history = list_append(if_not_exists(#status_history, :empty), :entry)"
	names := map[string]string{
		"#status_id":      "status_id",
		"#status_history": "status_history",
	}
	values := map[string]types.AttributeValue{
		":status_id": &types.AttributeValueMemberS{Value: commit.StatusID},
		":entry":     &types.AttributeValueMemberL{Value: []types.AttributeValue{entry}},
		":empty":     &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
	}
	if commit.TechnicalSolution != nil {
		expr += ", #technical_solution = :technical_solution"
		names["#technical_solution"] = "technical_solution"
		values[":technical_solution"] = &types.AttributeValueMemberS{Value: *commit.TechnicalSolution}
	}
	if commit.Note != nil {
		expr += ", #note = :note"
		names["#note"] = "note"
		values[":note"] = &types.AttributeValueMemberS{Value: *commit.Note}
	}
	if commit.ConfirmedServiceIDs != nil {
		confirmed, err := attributevalue.Marshal(commit.ConfirmedServiceIDs)
		if err != nil {
			return entities.ServiceOrder{}, err
		}
		expr += ", #confirmed_service_ids = :confirmed_service_ids"
		names["#confirmed_service_ids"] = "confirmed_service_ids"
		values[":confirmed_service_ids"] = confirmed
	}

	return r.update(ctx, id, expectedVersion, formatTime(commit.UpdatedAt), expr, values, names)
}

func (r *ServiceOrderDynamoRepository) ApplyEdit(ctx context.Context, id string, expectedVersion int64, commit entities.EditCommit) (entities.ServiceOrder, error) {
	it := toServiceOrderItem(commit.Order)
	entries := make([]editHistoryItem, 0, len(commit.Entries))
	for _, e := range commit.Entries {
		entries = append(entries, toEditHistoryItem(e))
	}

	values := map[string]types.AttributeValue{}
	set := func(placeholder string, v interface{}) error {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return err
		}
		values[placeholder] = av
		return nil
	}
	for placeholder, v := range map[string]interface{}{
		":client_id":        it.ClientID,
		":client_snapshot":  it.ClientSnapshot,
		":contact":          it.Contact,
		":equipment":        it.Equipment,
		":reported_problem": it.ReportedProblem,
		":technical_sol":    it.TechnicalSolution,
		":note":             it.Note,
		":entries":          entries,
	} {
		if err := set(placeholder, v); err != nil {
			return entities.ServiceOrder{}, err
		}
	}
	values[":empty"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{}}

	expr := "SET #client_id = :client_id, #client_snapshot = :client_snapshot, #contact = :contact, " +
		"#equipment = :equipment, #reported_problem = :reported_problem, #technical_solution = :technical_sol, " +
		"#note = :note, #edit_history = list_append(if_not_exists(#edit_history, :empty), :entries)"
	names := map[string]string{
		"#client_id":          "client_id",
		"#client_snapshot":    "client_snapshot",
		"#contact":            "contact",
		"#equipment":          "equipment",
		"#reported_problem":   "reported_problem",
		"#technical_solution": "technical_solution",
		"#note":               "note",
		"#edit_history":       "edit_history",
	}
	return r.update(ctx, id, expectedVersion, formatTime(commit.UpdatedAt), expr, values, names)
}

// update runs a SET expression conditioned on the item existing at
// expectedVersion and bumps the version. A missing item yields a zero order;
// a version mismatch yields interfaces.ErrVersionConflict.
func (r *ServiceOrderDynamoRepository) update(
	ctx context.Context,
	id string,
	expectedVersion int64,
	updatedAt string,
	setExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.ServiceOrder, error) {
	values[":expected"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)}
	values[":next"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion+1, 10)}
	values[":updated_at"] = &types.AttributeValueMemberS{Value: updatedAt}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.table),
		Key:                                 idKey(id),
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:                    aws.String(setExpr + ", #updated_at = :updated_at, #version = :next"),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id", "#version": "version", "#updated_at": "updated_at"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.ServiceOrder{}, nil
			}
			return entities.ServiceOrder{}, interfaces.ErrVersionConflict
		}
		return entities.ServiceOrder{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ServiceOrder{}, nil
	}
	return unmarshalServiceOrder(out.Attributes)
}

func unmarshalServiceOrder(av map[string]types.AttributeValue) (entities.ServiceOrder, error) {
	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	it := serviceOrderItem{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		ClientID:            o.ClientID,
		ClientSnapshot:      clientSnapshotItem(o.ClientSnapshot),
		Contact:             contactItem(o.Contact),
		Equipment:           equipmentItem(o.Equipment),
		ReportedProblem:     o.ReportedProblem,
		Analyst:             userRefItem(o.Analyst),
		ContractedServices:  make([]contractedServiceItem, 0, len(o.ContractedServices)),
		StatusID:            o.StatusID,
		TechnicalSolution:   o.TechnicalSolution,
		Note:                o.Note,
		ConfirmedServiceIDs: append([]string{}, o.ConfirmedServiceIDs...),
		StatusHistory:       make([]statusHistoryItem, 0, len(o.StatusHistory)),
		EditHistory:         make([]editHistoryItem, 0, len(o.EditHistory)),
		CreatedAt:           formatTime(o.CreatedAt),
		UpdatedAt:           formatTime(o.UpdatedAt),
		Version:             o.Version,
	}
	for _, s := range o.ContractedServices {
		it.ContractedServices = append(it.ContractedServices, contractedServiceItem(s))
	}
	for _, e := range o.StatusHistory {
		it.StatusHistory = append(it.StatusHistory, toStatusHistoryItem(e))
	}
	for _, e := range o.EditHistory {
		it.EditHistory = append(it.EditHistory, toEditHistoryItem(e))
	}
	return it
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	o := entities.ServiceOrder{
		ID:                 it.ID,
		OrderNumber:        it.OrderNumber,
		ClientID:           it.ClientID,
		ClientSnapshot:     entities.ClientSnapshot(it.ClientSnapshot),
		Contact:            entities.Contact(it.Contact),
		Equipment:          entities.Equipment(it.Equipment),
		ReportedProblem:    it.ReportedProblem,
		Analyst:            entities.UserRef(it.Analyst),
		ContractedServices: make([]entities.ContractedService, 0, len(it.ContractedServices)),
		StatusID:           it.StatusID,
		TechnicalSolution:  it.TechnicalSolution,
		Note:               it.Note,
		StatusHistory:      make([]entities.StatusHistoryEntry, 0, len(it.StatusHistory)),
		EditHistory:        make([]entities.EditHistoryEntry, 0, len(it.EditHistory)),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
		Version:            it.Version,
	}
	if len(it.ConfirmedServiceIDs) > 0 {
		o.ConfirmedServiceIDs = append([]string(nil), it.ConfirmedServiceIDs...)
	}
	for _, s := range it.ContractedServices {
		o.ContractedServices = append(o.ContractedServices, entities.ContractedService(s))
	}
	for _, e := range it.StatusHistory {
		o.StatusHistory = append(o.StatusHistory, entities.StatusHistoryEntry{
			From:      entities.StatusRef(e.From),
			To:        entities.StatusRef(e.To),
			CreatedAt: parseTime(e.CreatedAt),
			User:      entities.UserRef(e.User),
			Note:      e.Note,
		})
	}
	for _, e := range it.EditHistory {
		o.EditHistory = append(o.EditHistory, entities.EditHistoryEntry{
			Field:     e.Field,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			CreatedAt: parseTime(e.CreatedAt),
			User:      entities.UserRef(e.User),
		})
	}
	return o
}

func toStatusHistoryItem(e entities.StatusHistoryEntry) statusHistoryItem {
	return statusHistoryItem{
		From:      statusRefItem(e.From),
		To:        statusRefItem(e.To),
		CreatedAt: formatTime(e.CreatedAt),
		User:      userRefItem(e.User),
		Note:      e.Note,
	}
}

func toEditHistoryItem(e entities.EditHistoryEntry) editHistoryItem {
	return editHistoryItem{
		Field:     e.Field,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		CreatedAt: formatTime(e.CreatedAt),
		User:      userRefItem(e.User),
	}
}
