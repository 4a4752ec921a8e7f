/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package mocks

import (
	"context"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Account resource methods

func (m *MockDataSource) CreateAccountResource(ctx context.Context, resource *model.StoredResource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockDataSource) FindByAccountID(ctx context.Context, accountID string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error) {
	args := m.Called(ctx, accountID, resourceType, limit, offset)
	resources, _ := args.Get(0).([]model.StoredResource)
	return resources, args.Int(1), args.Error(2)
}

func (m *MockDataSource) FindByAccountIDIn(ctx context.Context, accountIDs []string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error) {
	args := m.Called(ctx, accountIDs, resourceType, limit, offset)
	resources, _ := args.Get(0).([]model.StoredResource)
	return resources, args.Int(1), args.Error(2)
}

// Payment methods

func (m *MockDataSource) CreatePayment(ctx context.Context, submission *model.PaymentSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockDataSource) GetPayment(ctx context.Context, paymentID string) (*model.PaymentSubmission, error) {
	args := m.Called(ctx, paymentID)
	submission, _ := args.Get(0).(*model.PaymentSubmission)
	return submission, args.Error(1)
}

func (m *MockDataSource) FindPaymentByIdempotencyKey(ctx context.Context, idempotencyKey, clientID string) (*model.PaymentSubmission, error) {
	args := m.Called(ctx, idempotencyKey, clientID)
	submission, _ := args.Get(0).(*model.PaymentSubmission)
	return submission, args.Error(1)
}

func (m *MockDataSource) UpdatePaymentStatus(ctx context.Context, paymentID string, from, to model.PaymentStatus) (bool, error) {
	args := m.Called(ctx, paymentID, from, to)
	return args.Bool(0), args.Error(1)
}

// Funds confirmation methods

func (m *MockDataSource) CreateFundsConfirmation(ctx context.Context, confirmation *model.FundsConfirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}
