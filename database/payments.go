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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"go.opentelemetry.io/otel"
)

const idempotencyConstraint = "uq_payment_submissions_client_idempotency_key"

const paymentColumns = `payment_id, consent_id, client_id, payment_type, idempotency_key, payload_hash, instruction, status, api_version, created_at, updated_at`

func (d Datasource) CreatePayment(ctx context.Context, submission *model.PaymentSubmission) error {
	ctx, span := otel.Tracer("payments").Start(ctx, "Saving payment submission to db")
	defer span.End()

	instruction, err := json.Marshal(submission.Instruction)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal payment instruction", err)
	}

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO obrs.payment_submissions (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, submission.PaymentID, submission.ConsentID, submission.ClientID, submission.PaymentType, submission.IdempotencyKey,
		submission.PayloadHash, instruction, submission.Status, submission.APIVersion, submission.CreatedAt, submission.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return storageError("Failed to create payment submission", err)
	}
	return nil
}

func (d Datasource) GetPayment(ctx context.Context, paymentID string) (*model.PaymentSubmission, error) {
	ctx, span := otel.Tracer("payments").Start(ctx, "Fetching payment submission from db")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM obrs.payment_submissions
		WHERE payment_id = $1
	`, paymentID)

	submission, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Payment with ID '%s' not found", paymentID), nil)
		}
		span.RecordError(err)
		return nil, err
	}
	return submission, nil
}

func (d Datasource) FindPaymentByIdempotencyKey(ctx context.Context, idempotencyKey, clientID string) (*model.PaymentSubmission, error) {
	ctx, span := otel.Tracer("payments").Start(ctx, "Fetching payment submission by idempotency key")
	defer span.End()

	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM obrs.payment_submissions
		WHERE idempotency_key = $1 AND client_id = $2
	`, idempotencyKey, clientID)

	submission, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, err
	}
	return submission, nil
}

func (d Datasource) UpdatePaymentStatus(ctx context.Context, paymentID string, from, to model.PaymentStatus) (bool, error) {
	ctx, span := otel.Tracer("payments").Start(ctx, "Updating payment submission status")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE obrs.payment_submissions
		SET status = $1, updated_at = $2
		WHERE payment_id = $3 AND status = $4
	`, to, time.Now().UTC(), paymentID, from)
	if err != nil {
		span.RecordError(err)
		return false, storageError("Failed to update payment status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, storageError("Failed to read updated payment rows", err)
	}
	return affected == 1, nil
}

func scanPayment(row *sql.Row) (*model.PaymentSubmission, error) {
	submission := &model.PaymentSubmission{}
	var instruction []byte
	err := row.Scan(&submission.PaymentID, &submission.ConsentID, &submission.ClientID, &submission.PaymentType,
		&submission.IdempotencyKey, &submission.PayloadHash, &instruction, &submission.Status, &submission.APIVersion,
		&submission.CreatedAt, &submission.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageError("Failed to retrieve payment submission", err)
	}

	err = json.Unmarshal(instruction, &submission.Instruction)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal payment instruction", err)
	}
	return submission, nil
}
