package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// mockCatalog is a mock implementation of types.Catalog.
type mockCatalog struct {
	mock.Mock
}

var _ types.Catalog = (*mockCatalog)(nil)

func (m *mockCatalog) Attach(config types.Config) error {
	return m.Called(config).Error(0)
}

func (m *mockCatalog) Detach() error {
	return m.Called().Error(0)
}

func (m *mockCatalog) Insert(ctx context.Context, item *types.Item) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, id int64) (*types.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Item), args.Error(1)
}

func (m *mockCatalog) List(ctx context.Context) ([]types.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Item), args.Error(1)
}

func (m *mockCatalog) Filter(ctx context.Context, filter types.ItemFilter) ([]types.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Item), args.Error(1)
}

func (m *mockCatalog) Replace(ctx context.Context, item *types.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalog) UpdateFields(ctx context.Context, id int64, updates map[string]string) (*types.Item, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Item), args.Error(1)
}

func (m *mockCatalog) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
