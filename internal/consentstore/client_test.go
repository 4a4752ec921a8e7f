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

package consentstore

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://consents.test"

func newTestClient(retries int) *Client {
	return NewClient(config.ConsentStoreConfig{
		BaseUrl:    baseURL,
		Timeout:    5,
		MaxRetries: retries,
		Headers:    map[string]string{"Authorization": "Bearer token"},
	})
}

func TestGetConsent_Success(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/consents/c1",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "client-1", req.Header.Get(ClientIDHeader))
			assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
			return httpmock.NewStringResponse(200, `{
				"consent_id": "c1",
				"client_id": "client-1",
				"status": "Authorised",
				"account_ids": ["a1", "a2"],
				"permissions": ["ReadAccountsDetail", "ReadStandingOrdersBasic"]
			}`), nil
		})

	consent, err := newTestClient(0).GetConsent(context.Background(), "c1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, model.ConsentStatusAuthorised, consent.Status)
	assert.Equal(t, []string{"a1", "a2"}, consent.AccountIDs)
	assert.Contains(t, consent.Permissions, model.ReadStandingOrdersBasic)
}

func TestGetConsent_NotFound(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/consents/missing",
		httpmock.NewStringResponder(404, `{"message":"not found"}`))

	_, err := newTestClient(3).GetConsent(context.Background(), "missing", "client-1")
	assert.ErrorIs(t, err, ErrConsentNotFound)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetConsent_OtherClient(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/consents/c1",
		httpmock.NewStringResponder(200, `{"consent_id":"c1","client_id":"client-2","status":"Authorised"}`))

	_, err := newTestClient(0).GetConsent(context.Background(), "c1", "client-1")
	assert.ErrorIs(t, err, ErrConsentNotFound)
}

func TestGetConsent_ServerErrorIsNotRetried(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/consents/c1",
		httpmock.NewStringResponder(500, `boom`))

	_, err := newTestClient(3).GetConsent(context.Background(), "c1", "client-1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetConsent_TransportErrorIsRetried(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/consents/c1",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := newTestClient(1).GetConsent(context.Background(), "c1", "client-1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestGetFundsConfirmationConsent(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", baseURL+"/funds-confirmation-consents/fcc1",
		httpmock.NewStringResponder(200, `{
			"consent_id": "fcc1",
			"client_id": "client-1",
			"status": "Authorised",
			"account_id": "a1",
			"debtor_account": {"SchemeName": "UK.OBIE.SortCodeAccountNumber", "Identification": "08080021325698"}
		}`))

	consent, err := newTestClient(0).GetFundsConfirmationConsent(context.Background(), "fcc1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "a1", consent.AccountID)
	assert.Equal(t, "08080021325698", consent.DebtorAccount.Identification)
}
