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
	"fmt"
	"math"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/redaction"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"go.opentelemetry.io/otel"
)

// AccountResourceQuery selects one page of account resources. An empty AccountID reads across
// every account the consent covers.
type AccountResourceQuery struct {
	ConsentID string
	ClientID  string
	AccountID string
	Page      int
}

// ReadAccountResources resolves the consent, reads one page of resources of type rt and removes
// whatever the consent's permissions do not release.
func (s *ResourceServer) ReadAccountResources(ctx context.Context, v VersionConfig, rt model.ResourceType, q AccountResourceQuery) (model.Page[any], error) {
	switch rt {
	case model.ResourceBeneficiaries:
		return readAccountResources(ctx, s, rt, q, v.Redaction.Beneficiaries)
	case model.ResourceStandingOrders:
		return readAccountResources(ctx, s, rt, q, v.Redaction.StandingOrders)
	case model.ResourceDirectDebits:
		return readAccountResources(ctx, s, rt, q, v.Redaction.DirectDebits)
	case model.ResourceScheduledPayments:
		return readAccountResources(ctx, s, rt, q, v.Redaction.ScheduledPayments)
	case model.ResourceStatements:
		return readAccountResources(ctx, s, rt, q, v.Redaction.Statements)
	case model.ResourceOffers:
		return readAccountResources(ctx, s, rt, q, v.Redaction.Offers)
	case model.ResourceBalances:
		return readAccountResources(ctx, s, rt, q, v.Redaction.Balances)
	}
	return model.Page[any]{}, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Unknown resource type '%s'", rt), nil)
}

func readAccountResources[T any](ctx context.Context, s *ResourceServer, rt model.ResourceType, q AccountResourceQuery, table redaction.Table[T]) (model.Page[any], error) {
	ctx, span := otel.Tracer("account-resources").Start(ctx, "Reading account resources")
	defer span.End()

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := s.pageSize()
	if page > math.MaxInt/limit {
		return model.Page[any]{}, apierror.NewValidationError([]apierror.FieldError{{
			ErrorCode: apierror.OBFieldInvalid,
			Message:   fmt.Sprintf("page must not exceed %d", math.MaxInt/limit),
			Path:      "page",
		}})
	}
	offset := (page - 1) * limit

	var (
		consent *model.Consent
		rows    []model.StoredResource
		total   int
		err     error
	)
	if q.AccountID != "" {
		consent, err = s.consents.ResolveForAccountAccess(ctx, q.ConsentID, q.ClientID, q.AccountID)
		if err != nil {
			return model.Page[any]{}, err
		}
		rows, total, err = s.datasource.FindByAccountID(ctx, q.AccountID, rt, limit, offset)
	} else {
		consent, err = s.consents.ResolveForAccess(ctx, q.ConsentID, q.ClientID)
		if err != nil {
			return model.Page[any]{}, err
		}
		rows, total, err = s.datasource.FindByAccountIDIn(ctx, consent.AccountIDs, rt, limit, offset)
	}
	if err != nil {
		return model.Page[any]{}, err
	}

	items, err := decodeResources[T](rows)
	if err != nil {
		return model.Page[any]{}, err
	}
	filtered := redaction.Filter(items, consent.Permissions, table)

	out := make([]any, len(filtered))
	for i := range filtered {
		out[i] = filtered[i]
	}
	return model.NewPage(out, page, limit, total), nil
}

func decodeResources[T any](rows []model.StoredResource) ([]T, error) {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := json.Unmarshal(row.Payload, &item); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer,
				fmt.Sprintf("Stored %s resource '%s' is corrupt", row.ResourceType, row.ResourceID), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateAccountResource stores a resource of type rt for accountID. The payload is decoded into
// the resource's type, so unknown fields are dropped and AccountId is forced to accountID.
func (s *ResourceServer) CreateAccountResource(ctx context.Context, accountID string, rt model.ResourceType, payload json.RawMessage) (*model.StoredResource, error) {
	if accountID == "" {
		return nil, apierror.NewValidationError([]apierror.FieldError{{
			ErrorCode: apierror.OBFieldMissing, Message: "account id is required", Path: "AccountId",
		}})
	}

	var (
		normalised any
		err        error
	)
	switch rt {
	case model.ResourceBeneficiaries:
		normalised, err = normalise(payload, func(r *model.Beneficiary) { r.AccountID = accountID })
	case model.ResourceStandingOrders:
		normalised, err = normalise(payload, func(r *model.StandingOrder) { r.AccountID = accountID })
	case model.ResourceDirectDebits:
		normalised, err = normalise(payload, func(r *model.DirectDebit) { r.AccountID = accountID })
	case model.ResourceScheduledPayments:
		normalised, err = normalise(payload, func(r *model.ScheduledPayment) { r.AccountID = accountID })
	case model.ResourceStatements:
		normalised, err = normalise(payload, func(r *model.Statement) { r.AccountID = accountID })
	case model.ResourceOffers:
		normalised, err = normalise(payload, func(r *model.Offer) { r.AccountID = accountID })
	case model.ResourceBalances:
		normalised, err = normalise(payload, func(r *model.Balance) { r.AccountID = accountID })
	default:
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Unknown resource type '%s'", rt), nil)
	}
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, fmt.Sprintf("Invalid %s payload", rt), err)
	}

	data, err := json.Marshal(normalised)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to encode resource", err)
	}

	now := s.now().UTC()
	resource := &model.StoredResource{
		ResourceID:   model.GenerateUUIDWithSuffix("res"),
		AccountID:    accountID,
		ResourceType: rt,
		Payload:      data,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.datasource.CreateAccountResource(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func normalise[T any](payload json.RawMessage, set func(*T)) (*T, error) {
	item := new(T)
	if err := json.Unmarshal(payload, item); err != nil {
		return nil, err
	}
	set(item)
	return item, nil
}

// balancesForAccount reads every balance held for accountID without consent checks. Callers
// must already have authorised the access.
func (s *ResourceServer) balancesForAccount(ctx context.Context, accountID string) ([]model.Balance, error) {
	var balances []model.Balance
	for offset := 0; ; {
		rows, total, err := s.datasource.FindByAccountID(ctx, accountID, model.ResourceBalances, s.pageSize(), offset)
		if err != nil {
			return nil, err
		}
		page, err := decodeResources[model.Balance](rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, page...)
		offset += len(rows)
		if len(rows) == 0 || offset >= total {
			return balances, nil
		}
	}
}
