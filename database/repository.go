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

package database

import (
	"context"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	accountResource   // Interface for account scoped resource operations
	payment           // Interface for payment submission operations
	fundsConfirmation // Interface for funds confirmation operations
}

// accountResource defines methods for account scoped resources. Reads return the requested
// page and the total number of rows matching the query.
type accountResource interface {
	CreateAccountResource(ctx context.Context, resource *model.StoredResource) error
	FindByAccountID(ctx context.Context, accountID string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error)
	FindByAccountIDIn(ctx context.Context, accountIDs []string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error)
}

// payment defines methods for payment submissions.
type payment interface {
	CreatePayment(ctx context.Context, submission *model.PaymentSubmission) error
	GetPayment(ctx context.Context, paymentID string) (*model.PaymentSubmission, error)
	FindPaymentByIdempotencyKey(ctx context.Context, idempotencyKey, clientID string) (*model.PaymentSubmission, error) // Returns nil, nil when no submission exists
	UpdatePaymentStatus(ctx context.Context, paymentID string, from, to model.PaymentStatus) (bool, error)              // Compare-and-set on the current status
}

// fundsConfirmation defines methods for funds confirmation records.
type fundsConfirmation interface {
	CreateFundsConfirmation(ctx context.Context, confirmation *model.FundsConfirmation) error
}
