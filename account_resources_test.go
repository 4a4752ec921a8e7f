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
	"encoding/json"
	"math"
	"testing"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedStandingOrder(t *testing.T, accountID, id string) model.StoredResource {
	payload, err := json.Marshal(model.StandingOrder{
		AccountID:       accountID,
		StandingOrderID: id,
		Frequency:       "EvryDay",
		CreditorAccount: sortCodeAccount(),
		CreditorAgent:   &model.FinancialInstitution{SchemeName: "UK.OBIE.BICFI", Identification: "NWBKGB2L"},
	})
	require.NoError(t, err)
	return model.StoredResource{ResourceID: "res_" + id, AccountID: accountID, ResourceType: model.ResourceStandingOrders, Payload: payload}
}

func TestReadAccountResourcesRedactsBasic(t *testing.T) {
	server, ds, store := newTestServer()
	store.On("GetConsent", mock.Anything, "c1", "tpp-1").
		Return(authorisedConsent("c1", "tpp-1", []string{"a1", "a2"}, model.ReadStandingOrdersBasic), nil)
	ds.On("FindByAccountID", mock.Anything, "a1", model.ResourceStandingOrders, 2, 0).
		Return([]model.StoredResource{storedStandingOrder(t, "a1", "so1"), storedStandingOrder(t, "a1", "so2")}, 3, nil)

	page, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1.10"), model.ResourceStandingOrders,
		AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1", AccountID: "a1", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.TotalItems)

	for _, item := range page.Items {
		order := item.(model.StandingOrder)
		assert.Nil(t, order.CreditorAccount)
		assert.Nil(t, order.CreditorAgent)
		assert.Equal(t, "EvryDay", order.Frequency)
	}
}

func TestReadAccountResourcesDetailKeepsEverything(t *testing.T) {
	server, ds, store := newTestServer()
	store.On("GetConsent", mock.Anything, "c1", "tpp-1").
		Return(authorisedConsent("c1", "tpp-1", []string{"a1"}, model.ReadStandingOrdersDetail), nil)
	ds.On("FindByAccountID", mock.Anything, "a1", model.ResourceStandingOrders, 2, 2).
		Return([]model.StoredResource{storedStandingOrder(t, "a1", "so3")}, 3, nil)

	page, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1.10"), model.ResourceStandingOrders,
		AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1", AccountID: "a1", Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Page)
	assert.NotNil(t, page.Items[0].(model.StandingOrder).CreditorAccount)
}

func TestReadAccountResourcesUnauthorisedAccount(t *testing.T) {
	server, ds, store := newTestServer()
	store.On("GetConsent", mock.Anything, "c1", "tpp-1").
		Return(authorisedConsent("c1", "tpp-1", []string{"a1", "a2"}, model.ReadStandingOrdersDetail), nil)

	_, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1.10"), model.ResourceStandingOrders,
		AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1", AccountID: "a3"})
	assert.True(t, apierror.HasCode(err, apierror.ErrAccountNotAuthorised))
	ds.AssertNotCalled(t, "FindByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadAccountResourcesBulk(t *testing.T) {
	server, ds, store := newTestServer()
	store.On("GetConsent", mock.Anything, "c1", "tpp-1").
		Return(authorisedConsent("c1", "tpp-1", []string{"a1", "a2"}, model.ReadBalances), nil)

	payload, err := json.Marshal(model.Balance{AccountID: "a2", Type: model.BalanceTypeInterimAvailable, Amount: model.Amount{Amount: "10.00", Currency: "GBP"}})
	require.NoError(t, err)
	ds.On("FindByAccountIDIn", mock.Anything, []string{"a1", "a2"}, model.ResourceBalances, 2, 0).
		Return([]model.StoredResource{{ResourceID: "res_b", AccountID: "a2", ResourceType: model.ResourceBalances, Payload: payload}}, 1, nil)

	page, err := server.ReadAccountResources(context.Background(), mustVersion("v4.0"), model.ResourceBalances,
		AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a2", page.Items[0].(model.Balance).AccountID)
}

func TestReadAccountResourcesUnknownType(t *testing.T) {
	server, _, _ := newTestServer()
	_, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1"), model.ResourceType("transactions"), AccountResourceQuery{})
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}

func TestCreateAccountResourceForcesAccountID(t *testing.T) {
	server, ds, _ := newTestServer()

	var stored *model.StoredResource
	ds.On("CreateAccountResource", mock.Anything, mock.AnythingOfType("*model.StoredResource")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.StoredResource) }).
		Return(nil)

	resource, err := server.CreateAccountResource(context.Background(), "a1", model.ResourceBeneficiaries,
		json.RawMessage(`{"AccountId":"other","BeneficiaryId":"b1","Unknown":true}`))
	require.NoError(t, err)
	assert.Equal(t, resource, stored)

	var beneficiary model.Beneficiary
	require.NoError(t, json.Unmarshal(stored.Payload, &beneficiary))
	assert.Equal(t, "a1", beneficiary.AccountID)
	assert.Equal(t, "b1", beneficiary.BeneficiaryID)
	assert.NotContains(t, string(stored.Payload), "Unknown")
}

func TestCreateAccountResourceRejectsBadInput(t *testing.T) {
	server, _, _ := newTestServer()

	_, err := server.CreateAccountResource(context.Background(), "a1", model.ResourceType("accounts"), json.RawMessage(`{}`))
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))

	_, err = server.CreateAccountResource(context.Background(), "a1", model.ResourceOffers, json.RawMessage(`[`))
	assert.True(t, apierror.HasCode(err, apierror.ErrBadRequest))

	_, err = server.CreateAccountResource(context.Background(), "", model.ResourceOffers, json.RawMessage(`{}`))
	assert.True(t, apierror.HasCode(err, apierror.ErrValidationFailed))
}

func TestReadAccountResourcesRejectsPageOutOfRange(t *testing.T) {
	server, ds, store := newTestServer()

	for _, page := range []int{math.MaxInt, math.MaxInt/2 + 1} {
		_, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1.10"), model.ResourceStandingOrders,
			AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1", AccountID: "a1", Page: page})
		require.Error(t, err)
		assert.True(t, apierror.HasCode(err, apierror.ErrValidationFailed))

		var apiErr apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "page", apiErr.Errors[0].Path)
	}

	ds.AssertNotCalled(t, "FindByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "GetConsent", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadAccountResourcesLastValidPage(t *testing.T) {
	server, ds, store := newTestServer()
	store.On("GetConsent", mock.Anything, "c1", "tpp-1").
		Return(authorisedConsent("c1", "tpp-1", []string{"a1"}, model.ReadStandingOrdersDetail), nil)
	last := math.MaxInt / 2
	ds.On("FindByAccountID", mock.Anything, "a1", model.ResourceStandingOrders, 2, (last-1)*2).
		Return([]model.StoredResource{}, 3, nil)

	page, err := server.ReadAccountResources(context.Background(), mustVersion("v3.1.10"), model.ResourceStandingOrders,
		AccountResourceQuery{ConsentID: "c1", ClientID: "tpp-1", AccountID: "a1", Page: last})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)
}
