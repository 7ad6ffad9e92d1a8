package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/storefront/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedResourceType  = errors.New("unsupported resource type")
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrInvalidOperationData     = errors.New("invalid data type for operation")
)

// Operation types understood by BatchExecutor.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationGet    = "get"
)

// Resource names understood by BatchExecutor.
const (
	ResourceProduct  = "product"
	ResourceBrand    = "brand"
	ResourceCategory = "category"
	ResourceService  = "service"
	ResourceCourse   = "course"
	ResourceBooking  = "booking"
)

// UpdateData pairs an update request with the id it applies to.
type UpdateData[T any] struct {
	ID      string
	Request *T
}

// BatchOperation represents a single operation in a batch.
//
// Data is a *CreateRequest for create, *UpdateData[UpdateRequest] for
// update, and the resource id string for get and delete.
type BatchOperation struct {
	ID       string
	Type     string
	Resource string
	Data     interface{}
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs independent operations with bounded concurrency.
// Identical operations are not coalesced.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-operation timeout. Zero leaves deadlines to ctx.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and returns their results in input order. A
// failing operation does not stop the others; the returned error is non-nil
// only when ctx ends before every operation started.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var group errgroup.Group

	group.SetLimit(b.concurrency)

	for index, operation := range operations {
		if ctx.Err() != nil {
			for rest := index; rest < len(operations); rest++ {
				results[rest] = BatchResult{ID: operations[rest].ID, Error: NewCanceledError(ctx.Err())}
			}

			break
		}

		group.Go(func() error {
			opCtx := ctx

			if b.timeout > 0 {
				var cancel context.CancelFunc

				opCtx, cancel = context.WithTimeout(ctx, b.timeout)
				defer cancel()
			}

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}

			return nil
		})
	}

	_ = group.Wait()

	return results, ctx.Err()
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	var ops crudOperations

	switch operation.Resource {
	case ResourceProduct:
		ops = newCRUDOperations(b.client.Products())
	case ResourceBrand:
		ops = newCRUDOperations(b.client.Brands())
	case ResourceCategory:
		ops = newCRUDOperations(b.client.Categories())
	case ResourceService:
		ops = newCRUDOperations(b.client.Services())
	case ResourceCourse:
		ops = newCRUDOperations(b.client.Courses())
	case ResourceBooking:
		ops = newCRUDOperations(b.client.Bookings())
	default:
		return &BatchResult{
			ID:    operation.ID,
			Error: fmt.Errorf("%w: %s", ErrUnsupportedResourceType, operation.Resource),
		}
	}

	return ops.run(ctx, operation)
}

// crudOperations erases the request types of one resource client.
type crudOperations struct {
	create func(ctx context.Context, data interface{}) (interface{}, error)
	update func(ctx context.Context, data interface{}) (interface{}, error)
	remove func(ctx context.Context, id string) error
	get    func(ctx context.Context, id string) (interface{}, error)
}

func newCRUDOperations[T, L, C, U any](client ResourceClient[T, L, C, U]) crudOperations {
	return crudOperations{
		create: func(ctx context.Context, data interface{}) (interface{}, error) {
			req, ok := data.(*C)
			if !ok {
				return nil, fmt.Errorf("%w: create wants %T", ErrInvalidOperationData, req)
			}

			return client.Create(ctx, req)
		},
		update: func(ctx context.Context, data interface{}) (interface{}, error) {
			req, ok := data.(*UpdateData[U])
			if !ok {
				return nil, fmt.Errorf("%w: update wants %T", ErrInvalidOperationData, req)
			}

			return client.Update(ctx, req.ID, req.Request)
		},
		remove: client.Delete,
		get: func(ctx context.Context, id string) (interface{}, error) {
			return client.Get(ctx, id)
		},
	}
}

func (o crudOperations) run(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	switch operation.Type {
	case OperationCreate:
		result.Data, result.Error = o.create(ctx, operation.Data)
	case OperationUpdate:
		result.Data, result.Error = o.update(ctx, operation.Data)
	case OperationDelete, OperationGet:
		id, ok := operation.Data.(string)
		if !ok {
			result.Error = fmt.Errorf("%w: %s wants a string id", ErrInvalidOperationData, operation.Type)

			break
		}

		if operation.Type == OperationDelete {
			result.Error = o.remove(ctx, id)
		} else {
			result.Data, result.Error = o.get(ctx, id)
		}
	default:
		result.Error = fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}

	result.Success = result.Error == nil

	return result
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// AddCreateProduct adds a product creation operation.
func (b *BatchBuilder) AddCreateProduct(id string, request *ProductCreateRequest) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: OperationCreate, Resource: ResourceProduct, Data: request})
}

// AddUpdateProduct adds a product update operation.
func (b *BatchBuilder) AddUpdateProduct(id, productID string, request *ProductUpdateRequest) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     OperationUpdate,
		Resource: ResourceProduct,
		Data:     &UpdateData[ProductUpdateRequest]{ID: productID, Request: request},
	})
}

// AddDeleteProduct adds a product deletion operation.
func (b *BatchBuilder) AddDeleteProduct(id, productID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: OperationDelete, Resource: ResourceProduct, Data: productID})
}

// AddGet adds a get operation for any resource.
func (b *BatchBuilder) AddGet(id, resource, resourceID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Type: OperationGet, Resource: resource, Data: resourceID})
}

// AddCancelBooking adds a booking cancellation, expressed as a status update.
func (b *BatchBuilder) AddCancelBooking(id, bookingID string) *BatchBuilder {
	status := BookingStatusCancelled

	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     OperationUpdate,
		Resource: ResourceBooking,
		Data:     &UpdateData[BookingUpdateRequest]{ID: bookingID, Request: &BookingUpdateRequest{Status: &status}},
	})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
