package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockRunRecorder is a mock type for the RunRecorder type.
type MockRunRecorder struct {
	mock.Mock
}

// MockRunRecorder_Expecter wraps the mock for typed expectations.
type MockRunRecorder_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockRunRecorder) EXPECT() *MockRunRecorder_Expecter {
	return &MockRunRecorder_Expecter{mock: &_m.Mock}
}

// ArticlesFetched provides a mock function with given fields: n
func (_m *MockRunRecorder) ArticlesFetched(n int) {
	_m.Called(n)
}

// MockRunRecorder_ArticlesFetched_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ArticlesFetched'
type MockRunRecorder_ArticlesFetched_Call struct {
	*mock.Call
}

// ArticlesFetched is a helper method to define mock.On call
//   - n int
func (_e *MockRunRecorder_Expecter) ArticlesFetched(n interface{}) *MockRunRecorder_ArticlesFetched_Call {
	return &MockRunRecorder_ArticlesFetched_Call{Call: _e.mock.On("ArticlesFetched", n)}
}

func (_c *MockRunRecorder_ArticlesFetched_Call) Return() *MockRunRecorder_ArticlesFetched_Call {
	_c.Call.Return()
	return _c
}

// MatchScored provides a mock function with given fields: score
func (_m *MockRunRecorder) MatchScored(score float64) {
	_m.Called(score)
}

// MockRunRecorder_MatchScored_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'MatchScored'
type MockRunRecorder_MatchScored_Call struct {
	*mock.Call
}

// MatchScored is a helper method to define mock.On call
//   - score float64
func (_e *MockRunRecorder_Expecter) MatchScored(score interface{}) *MockRunRecorder_MatchScored_Call {
	return &MockRunRecorder_MatchScored_Call{Call: _e.mock.On("MatchScored", score)}
}

func (_c *MockRunRecorder_MatchScored_Call) Return() *MockRunRecorder_MatchScored_Call {
	_c.Call.Return()
	return _c
}

// PostCompleted provides a mock function with given fields: result
func (_m *MockRunRecorder) PostCompleted(result string) {
	_m.Called(result)
}

// MockRunRecorder_PostCompleted_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PostCompleted'
type MockRunRecorder_PostCompleted_Call struct {
	*mock.Call
}

// PostCompleted is a helper method to define mock.On call
//   - result string
func (_e *MockRunRecorder_Expecter) PostCompleted(result interface{}) *MockRunRecorder_PostCompleted_Call {
	return &MockRunRecorder_PostCompleted_Call{Call: _e.mock.On("PostCompleted", result)}
}

func (_c *MockRunRecorder_PostCompleted_Call) Return() *MockRunRecorder_PostCompleted_Call {
	_c.Call.Return()
	return _c
}

// NewMockRunRecorder creates a new instance of MockRunRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRunRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRunRecorder {
	m := &MockRunRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
