package mocks

import (
	"github.com/ridloal/product-catalog-service/internal/platform/metrics"
	"github.com/stretchr/testify/mock"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordCreation(record metrics.CreationRecord) {
	m.Called(record)
}
