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
	"go.opentelemetry.io/otel"
)

func (d Datasource) CreateFundsConfirmation(ctx context.Context, confirmation *model.FundsConfirmation) error {
	ctx, span := otel.Tracer("funds confirmations").Start(ctx, "Saving funds confirmation to db")
	defer span.End()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO obrs.funds_confirmations (funds_confirmation_id, consent_id, client_id, reference, funds_available, amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, confirmation.FundsConfirmationID, confirmation.ConsentID, confirmation.ClientID, confirmation.Reference,
		confirmation.FundsAvailable, confirmation.InstructedAmount.Amount, confirmation.InstructedAmount.Currency, confirmation.CreationDateTime)
	if err != nil {
		span.RecordError(err)
		return storageError("Failed to create funds confirmation", err)
	}
	return nil
}
