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

package rs

import (
	"context"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/database"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/stretchr/testify/mock"
)

// MockConsentStore is a testify mock of ConsentStore.
type MockConsentStore struct {
	mock.Mock
}

func (m *MockConsentStore) GetConsent(ctx context.Context, consentID, clientID string) (*model.Consent, error) {
	args := m.Called(ctx, consentID, clientID)
	consent, _ := args.Get(0).(*model.Consent)
	return consent, args.Error(1)
}

func (m *MockConsentStore) GetFundsConfirmationConsent(ctx context.Context, consentID, clientID string) (*model.FundsConfirmationConsent, error) {
	args := m.Called(ctx, consentID, clientID)
	consent, _ := args.Get(0).(*model.FundsConfirmationConsent)
	return consent, args.Error(1)
}

// NewTestResourceServer builds a server around ds and store with cnf, bypassing the global
// configuration and redis. It is meant for tests of this package and its callers.
func NewTestResourceServer(ds database.IDataSource, store ConsentStore, cnf *config.Configuration, now func() time.Time) *ResourceServer {
	resolver := NewConsentResolver(store)
	resolver.now = now
	return &ResourceServer{datasource: ds, consents: resolver, config: cnf, now: now}
}
