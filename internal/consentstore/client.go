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

// Package consentstore is the HTTP client for the external consent store.
package consentstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/request"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/cenkalti/backoff/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ClientIDHeader carries the id of the TPP the consent is looked up for.
const ClientIDHeader = "x-api-client-id"

var (
	// ErrConsentNotFound is returned when the store has no consent with the id for the client.
	ErrConsentNotFound = errors.New("consent not found")
	// ErrUnavailable wraps every failure to obtain an answer from the store.
	ErrUnavailable = errors.New("consent store unavailable")
)

type Client struct {
	baseURL    string
	headers    map[string]string
	maxRetries int
	httpClient *http.Client
}

func NewClient(cnf config.ConsentStoreConfig) *Client {
	return &Client{
		baseURL:    cnf.BaseUrl,
		headers:    cnf.Headers,
		maxRetries: cnf.MaxRetries,
		httpClient: &http.Client{Timeout: time.Duration(cnf.Timeout) * time.Second},
	}
}

// GetConsent fetches an account access or payment consent.
func (c *Client) GetConsent(ctx context.Context, consentID, clientID string) (*model.Consent, error) {
	var consent model.Consent
	if err := c.get(ctx, "consents", consentID, clientID, &consent); err != nil {
		return nil, err
	}
	if consent.ClientID != "" && consent.ClientID != clientID {
		return nil, ErrConsentNotFound
	}
	return &consent, nil
}

// GetFundsConfirmationConsent fetches a CBPII funds confirmation consent.
func (c *Client) GetFundsConfirmationConsent(ctx context.Context, consentID, clientID string) (*model.FundsConfirmationConsent, error) {
	var consent model.FundsConfirmationConsent
	if err := c.get(ctx, "funds-confirmation-consents", consentID, clientID, &consent); err != nil {
		return nil, err
	}
	if consent.ClientID != "" && consent.ClientID != clientID {
		return nil, ErrConsentNotFound
	}
	return &consent, nil
}

// get retries transport failures only. Any answer from the store is final.
func (c *Client) get(ctx context.Context, collection, consentID, clientID string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, collection, url.PathEscape(consentID))

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set(ClientIDHeader, clientID)
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		_, err = request.Call(c.httpClient, req, out)
		if err == nil {
			return nil
		}
		var statusErr *request.StatusError
		if errors.As(err, &statusErr) {
			return backoff.Permanent(statusErr)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		logrus.WithFields(logrus.Fields{"consent_id": consentID, "endpoint": endpoint}).Warnf("consent store request failed: %v", err)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)), ctx)
	err := backoff.Retry(operation, policy)
	if err == nil {
		return nil
	}

	var statusErr *request.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return ErrConsentNotFound
		}
		return pkgerrors.Wrapf(ErrUnavailable, "fetching %s %s: status %d", collection, consentID, statusErr.StatusCode)
	}
	return pkgerrors.Wrapf(ErrUnavailable, "fetching %s %s: %v", collection, consentID, err)
}
