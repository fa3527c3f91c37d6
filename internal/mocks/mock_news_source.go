// Package mocks holds testify mocks of the ports, in mockery's expecter style.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

// MockNewsSource is a mock type for the NewsSource type.
type MockNewsSource struct {
	mock.Mock
}

// MockNewsSource_Expecter wraps the mock for typed expectations.
type MockNewsSource_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockNewsSource) EXPECT() *MockNewsSource_Expecter {
	return &MockNewsSource_Expecter{mock: &_m.Mock}
}

// TopHeadlines provides a mock function with given fields: ctx
func (_m *MockNewsSource) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for TopHeadlines")
	}

	var r0 []domain.Article
	var r1 error

	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.Article, error)); ok {
		return rf(ctx)
	}

	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Article)
	}

	r1 = ret.Error(1)

	return r0, r1
}

// MockNewsSource_TopHeadlines_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'TopHeadlines'
type MockNewsSource_TopHeadlines_Call struct {
	*mock.Call
}

// TopHeadlines is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockNewsSource_Expecter) TopHeadlines(ctx interface{}) *MockNewsSource_TopHeadlines_Call {
	return &MockNewsSource_TopHeadlines_Call{Call: _e.mock.On("TopHeadlines", ctx)}
}

func (_c *MockNewsSource_TopHeadlines_Call) Run(run func(ctx context.Context)) *MockNewsSource_TopHeadlines_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockNewsSource_TopHeadlines_Call) Return(_a0 []domain.Article, _a1 error) *MockNewsSource_TopHeadlines_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockNewsSource_TopHeadlines_Call) RunAndReturn(run func(context.Context) ([]domain.Article, error)) *MockNewsSource_TopHeadlines_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockNewsSource creates a new instance of MockNewsSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockNewsSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNewsSource {
	m := &MockNewsSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
