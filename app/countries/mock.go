package countries

import (
	"context"

	"github.com/joefazee/atlas/models"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FetchAll(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Status(ctx context.Context) StatusResponse {
	args := m.Called(ctx)
	return args.Get(0).(StatusResponse)
}

func (m *MockService) View(ctx context.Context, sessionID string) (*ViewResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ViewResponse), args.Error(1)
}

func (m *MockService) SetQuery(ctx context.Context, sessionID, query string) (*ViewResponse, error) {
	args := m.Called(ctx, sessionID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ViewResponse), args.Error(1)
}

func (m *MockService) GoToPage(ctx context.Context, sessionID string, dir Direction) (*ViewResponse, error) {
	args := m.Called(ctx, sessionID, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ViewResponse), args.Error(1)
}

func (m *MockService) Reload(ctx context.Context) StatusResponse {
	args := m.Called(ctx)
	return args.Get(0).(StatusResponse)
}
