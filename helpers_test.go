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
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/database/mocks"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/wacul/ptr"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Configuration {
	return &config.Configuration{
		ProjectName: "obrs-test",
		Pagination:  config.PaginationConfig{PageSize: 2},
		Idempotency: config.IdempotencyConfig{
			LockDuration:     time.Second,
			LockWaitTimeout:  100 * time.Millisecond,
			LockPollInterval: 10 * time.Millisecond,
		},
		Queue: config.QueueConfig{StatusUpdateQueue: "payment_status_updates", Concurrency: 1, MaxRetry: 1},
	}
}

func newTestServer() (*ResourceServer, *mocks.MockDataSource, *MockConsentStore) {
	ds := &mocks.MockDataSource{}
	store := &MockConsentStore{}
	server := NewTestResourceServer(ds, store, testConfig(), func() time.Time { return fixedNow })
	return server, ds, store
}

func authorisedConsent(consentID, clientID string, accounts []string, permissions ...model.Permission) *model.Consent {
	return &model.Consent{
		ConsentID:            consentID,
		ClientID:             clientID,
		Status:               model.ConsentStatusAuthorised,
		AccountIDs:           accounts,
		Permissions:          permissions,
		ExpirationDateTime:   ptr.Time(fixedNow.Add(24 * time.Hour)),
		CreationDateTime:     fixedNow.Add(-time.Hour),
		StatusUpdateDateTime: fixedNow.Add(-time.Hour),
	}
}

func sortCodeAccount() *model.CashAccount {
	return &model.CashAccount{
		SchemeName:     SchemeSortCodeAccountNumber,
		Identification: gofakeit.Numerify("##############"),
		Name:           gofakeit.Name(),
	}
}

func domesticInstruction() model.PaymentInstruction {
	return model.PaymentInstruction{
		InstructionIdentification: gofakeit.LetterN(12),
		EndToEndIdentification:    gofakeit.LetterN(12),
		InstructedAmount:          &model.Amount{Amount: "10.50", Currency: "GBP"},
		CreditorAccount:           sortCodeAccount(),
		RemittanceInformation:     &model.RemittanceInformation{Reference: "INV-1"},
	}
}

func mustVersion(name string) VersionConfig {
	v, err := LookupVersion(name)
	if err != nil {
		panic(err)
	}
	return v
}
