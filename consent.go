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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/consentstore"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/sirupsen/logrus"
)

// ConsentStore fetches consents owned by the external consent store. Implementations return
// consentstore.ErrConsentNotFound (or a nil consent) when nothing matches the id and client.
type ConsentStore interface {
	GetConsent(ctx context.Context, consentID, clientID string) (*model.Consent, error)
	GetFundsConfirmationConsent(ctx context.Context, consentID, clientID string) (*model.FundsConfirmationConsent, error)
}

// ConsentResolver gates every resource read and payment submission on a consent.
// It never caches and never changes consent state.
type ConsentResolver struct {
	store ConsentStore
	now   func() time.Time
}

func NewConsentResolver(store ConsentStore) *ConsentResolver {
	return &ConsentResolver{store: store, now: time.Now}
}

// ResolveForAccess returns the consent when it exists for the client, is Authorised and has
// not expired.
func (r *ConsentResolver) ResolveForAccess(ctx context.Context, consentID, clientID string) (*model.Consent, error) {
	if strings.TrimSpace(consentID) == "" {
		return nil, consentNotFound(consentID)
	}

	consent, err := r.store.GetConsent(ctx, consentID, clientID)
	if err != nil {
		return nil, storeError(consentID, err)
	}
	if consent == nil {
		return nil, consentNotFound(consentID)
	}

	if err := checkAuthorised(consentID, consent, consent.Status, consent.ExpirationDateTime, r.now()); err != nil {
		return nil, err
	}
	return consent, nil
}

// ResolveForAccountAccess additionally requires accountID to be one of the consent's accounts.
func (r *ConsentResolver) ResolveForAccountAccess(ctx context.Context, consentID, clientID, accountID string) (*model.Consent, error) {
	consent, err := r.ResolveForAccess(ctx, consentID, clientID)
	if err != nil {
		return nil, err
	}
	if !consent.HasAccount(accountID) {
		logrus.WithFields(logrus.Fields{
			"consent_id": consentID,
			"client_id":  clientID,
			"account_id": accountID,
		}).Warn("account not authorised by consent")
		return nil, apierror.NewAPIError(apierror.ErrAccountNotAuthorised,
			fmt.Sprintf("Account '%s' is not authorised by consent '%s'", accountID, consentID), nil)
	}
	return consent, nil
}

// ResolveFundsConfirmationConsent applies the same gating to a CBPII consent.
func (r *ConsentResolver) ResolveFundsConfirmationConsent(ctx context.Context, consentID, clientID string) (*model.FundsConfirmationConsent, error) {
	if strings.TrimSpace(consentID) == "" {
		return nil, consentNotFound(consentID)
	}

	consent, err := r.store.GetFundsConfirmationConsent(ctx, consentID, clientID)
	if err != nil {
		return nil, storeError(consentID, err)
	}
	if consent == nil {
		return nil, consentNotFound(consentID)
	}

	if err := checkAuthorised(consentID, consent, consent.Status, consent.ExpirationDateTime, r.now()); err != nil {
		return nil, err
	}
	return consent, nil
}

// gatedConsent is satisfied by every consent kind the resolver hands out.
type gatedConsent interface {
	IsAuthorised() bool
	IsExpired(now time.Time) bool
}

func checkAuthorised(consentID string, consent gatedConsent, status model.ConsentStatus, expiration *time.Time, now time.Time) error {
	if !consent.IsAuthorised() {
		return apierror.NewAPIError(apierror.ErrConsentNotAuthorised,
			fmt.Sprintf("Consent '%s' has status '%s'", consentID, status), nil)
	}
	if consent.IsExpired(now) {
		return apierror.NewAPIError(apierror.ErrConsentNotAuthorised,
			fmt.Sprintf("Consent '%s' expired at %s", consentID, expiration.UTC().Format(time.RFC3339)), nil)
	}
	return nil
}

func consentNotFound(consentID string) error {
	return apierror.NewAPIError(apierror.ErrConsentNotFound, fmt.Sprintf("Consent '%s' not found", consentID), nil)
}

func storeError(consentID string, err error) error {
	if errors.Is(err, consentstore.ErrConsentNotFound) {
		return consentNotFound(consentID)
	}
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return apierror.NewAPIError(apierror.ErrStorageUnavailable, "Consent store is unavailable", err)
}
