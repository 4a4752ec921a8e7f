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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var paymentRowColumns = []string{"payment_id", "consent_id", "client_id", "payment_type", "idempotency_key", "payload_hash", "instruction", "status", "api_version", "created_at", "updated_at"}

func samplePayment() *model.PaymentSubmission {
	now := time.Now().UTC()
	return &model.PaymentSubmission{
		PaymentID:      "pmt_1",
		ConsentID:      "c1",
		ClientID:       "client-1",
		PaymentType:    model.DomesticPayment,
		IdempotencyKey: "key-1",
		PayloadHash:    "hash-1",
		Instruction: model.PaymentInstruction{
			InstructionIdentification: "ACME412",
			EndToEndIdentification:    "FRESCO.21302.GFX.20",
			InstructedAmount:          &model.Amount{Amount: "165.88", Currency: "GBP"},
		},
		Status:     model.PaymentStatusPending,
		APIVersion: "v3.1.10",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func paymentRow(p *model.PaymentSubmission) *sqlmock.Rows {
	instruction, _ := json.Marshal(p.Instruction)
	return sqlmock.NewRows(paymentRowColumns).
		AddRow(p.PaymentID, p.ConsentID, p.ClientID, string(p.PaymentType), p.IdempotencyKey, p.PayloadHash, instruction, string(p.Status), p.APIVersion, p.CreatedAt, p.UpdatedAt)
}

func TestCreatePayment_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	p := samplePayment()
	instruction, err := json.Marshal(p.Instruction)
	assert.NoError(t, err)

	mock.ExpectExec("INSERT INTO obrs.payment_submissions").
		WithArgs(p.PaymentID, p.ConsentID, p.ClientID, p.PaymentType, p.IdempotencyKey, p.PayloadHash, instruction, p.Status, p.APIVersion, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = ds.CreatePayment(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePayment_DuplicateIdempotencyKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("INSERT INTO obrs.payment_submissions").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint", Constraint: idempotencyConstraint})

	err = ds.CreatePayment(context.Background(), samplePayment())
	assert.ErrorIs(t, err, ErrDuplicateIdempotencyKey)
}

func TestGetPayment_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	p := samplePayment()

	mock.ExpectQuery("SELECT (.+) FROM obrs.payment_submissions WHERE payment_id = \\$1").
		WithArgs("pmt_1").
		WillReturnRows(paymentRow(p))

	got, err := ds.GetPayment(context.Background(), "pmt_1")
	assert.NoError(t, err)
	assert.Equal(t, p.Instruction, got.Instruction)
	assert.Equal(t, model.PaymentStatusPending, got.Status)
	assert.Equal(t, model.DomesticPayment, got.PaymentType)
}

func TestGetPayment_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM obrs.payment_submissions WHERE payment_id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = ds.GetPayment(context.Background(), "missing")
	assert.True(t, apierror.HasCode(err, apierror.ErrNotFound))
}

func TestFindPaymentByIdempotencyKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	p := samplePayment()

	mock.ExpectQuery("SELECT (.+) FROM obrs.payment_submissions WHERE idempotency_key = \\$1 AND client_id = \\$2").
		WithArgs("key-1", "client-1").
		WillReturnRows(paymentRow(p))
	mock.ExpectQuery("SELECT (.+) FROM obrs.payment_submissions WHERE idempotency_key = \\$1 AND client_id = \\$2").
		WithArgs("key-2", "client-1").
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	got, err := ds.FindPaymentByIdempotencyKey(context.Background(), "key-1", "client-1")
	assert.NoError(t, err)
	assert.Equal(t, "pmt_1", got.PaymentID)

	got, err = ds.FindPaymentByIdempotencyKey(context.Background(), "key-2", "client-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaymentByIdempotencyKey_StorageFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM obrs.payment_submissions").
		WillReturnError(&pq.Error{Code: "57P01"})

	_, err = ds.FindPaymentByIdempotencyKey(context.Background(), "key-1", "client-1")
	assert.True(t, apierror.HasCode(err, apierror.ErrStorageUnavailable))
}

func TestUpdatePaymentStatus_CompareAndSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE obrs.payment_submissions SET status = \\$1, updated_at = \\$2 WHERE payment_id = \\$3 AND status = \\$4").
		WithArgs(model.PaymentStatusAcceptedSettlementInProcess, sqlmock.AnyArg(), "pmt_1", model.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE obrs.payment_submissions").
		WithArgs(model.PaymentStatusAcceptedSettlementInProcess, sqlmock.AnyArg(), "pmt_1", model.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := ds.UpdatePaymentStatus(context.Background(), "pmt_1", model.PaymentStatusPending, model.PaymentStatusAcceptedSettlementInProcess)
	assert.NoError(t, err)
	assert.True(t, updated)

	updated, err = ds.UpdatePaymentStatus(context.Background(), "pmt_1", model.PaymentStatusPending, model.PaymentStatusAcceptedSettlementInProcess)
	assert.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFundsConfirmation(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}
	fc := &model.FundsConfirmation{
		FundsConfirmationID: "fc_1",
		ConsentID:           "fcc1",
		ClientID:            "client-1",
		Reference:           "Purchase01",
		FundsAvailable:      true,
		InstructedAmount:    model.Amount{Amount: "20.00", Currency: "GBP"},
		CreationDateTime:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO obrs.funds_confirmations").
		WithArgs("fc_1", "fcc1", "client-1", "Purchase01", true, "20.00", "GBP", fc.CreationDateTime).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, ds.CreateFundsConfirmation(context.Background(), fc))
	assert.NoError(t, mock.ExpectationsWereMet())
}
