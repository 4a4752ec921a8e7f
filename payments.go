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
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/database"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	redlock "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/lock"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/notification"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

// maxStatusUpdateAttempts bounds the compare-and-set retries of UpdatePaymentStatus.
const maxStatusUpdateAttempts = 3

// PaymentRequest is an inbound payment submission.
type PaymentRequest struct {
	Version        VersionConfig
	PaymentType    model.PaymentType
	ConsentID      string
	ClientID       string
	IdempotencyKey string
	Instruction    model.PaymentInstruction
}

// payloadFingerprint is what two submissions must share to count as the same request.
type payloadFingerprint struct {
	PaymentType model.PaymentType        `json:"payment_type"`
	ConsentID   string                   `json:"consent_id"`
	Instruction model.PaymentInstruction `json:"instruction"`
}

// SubmitPayment validates and records a payment. A request repeating the idempotency key and
// payload of an earlier submission by the same client returns that submission with replayed set
// and persists nothing. Reusing the key with a different payload fails with
// IDEMPOTENCY_KEY_REUSE_CONFLICT.
func (s *ResourceServer) SubmitPayment(ctx context.Context, req PaymentRequest) (submission *model.PaymentSubmission, replayed bool, err error) {
	ctx, span := otel.Tracer("payments").Start(ctx, "Submitting payment")
	defer span.End()

	if !req.Version.AcceptsPaymentType(req.PaymentType) {
		return nil, false, apierror.NewAPIError(apierror.ErrNotFound,
			fmt.Sprintf("Payment type '%s' is not available in %s", req.PaymentType, req.Version.Version), nil)
	}

	result := ValidateIdempotencyKey(req.IdempotencyKey)
	result.merge(ValidatePaymentInstruction(req.PaymentType, req.Instruction, req.Version.Validation, s.now()))
	if err := result.Err(); err != nil {
		return nil, false, err
	}

	hash, err := model.HashPayload(payloadFingerprint{PaymentType: req.PaymentType, ConsentID: req.ConsentID, Instruction: req.Instruction})
	if err != nil {
		return nil, false, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to hash payment payload", err)
	}

	if s.redis != nil {
		unlock := s.lockIdempotencyKey(ctx, req.ClientID, req.IdempotencyKey)
		defer unlock()
	}

	existing, err := s.datasource.FindPaymentByIdempotencyKey(ctx, req.IdempotencyKey, req.ClientID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return replayOrConflict(existing, hash)
	}

	if _, err := s.consents.ResolveForAccess(ctx, req.ConsentID, req.ClientID); err != nil {
		return nil, false, err
	}

	now := s.now().UTC()
	submission = &model.PaymentSubmission{
		PaymentID:      model.GenerateUUIDWithSuffix("pmt"),
		ConsentID:      req.ConsentID,
		ClientID:       req.ClientID,
		PaymentType:    req.PaymentType,
		IdempotencyKey: req.IdempotencyKey,
		PayloadHash:    hash,
		Instruction:    req.Instruction,
		Status:         InitialPaymentStatus(req.PaymentType),
		APIVersion:     req.Version.Version,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.datasource.CreatePayment(ctx, submission)
	if errors.Is(err, database.ErrDuplicateIdempotencyKey) {
		// Lost the insert race: the winner decides between replay and conflict.
		winner, findErr := s.datasource.FindPaymentByIdempotencyKey(ctx, req.IdempotencyKey, req.ClientID)
		if findErr != nil {
			return nil, false, findErr
		}
		if winner == nil {
			return nil, false, apierror.NewAPIError(apierror.ErrStorageUnavailable, "Payment vanished after idempotency key collision", err)
		}
		return replayOrConflict(winner, hash)
	}
	if err != nil {
		return nil, false, err
	}

	logrus.WithFields(logrus.Fields{
		"payment_id":   submission.PaymentID,
		"payment_type": submission.PaymentType,
		"consent_id":   submission.ConsentID,
		"status":       submission.Status,
	}).Info("payment submission created")
	return submission, false, nil
}

func replayOrConflict(existing *model.PaymentSubmission, hash string) (*model.PaymentSubmission, bool, error) {
	if existing.PayloadHash == hash {
		return existing, true, nil
	}
	return nil, false, apierror.NewAPIError(apierror.ErrIdempotencyKeyReuseConflict,
		fmt.Sprintf("Idempotency key '%s' was already used with a different payload", existing.IdempotencyKey), nil)
}

// lockIdempotencyKey serialises submissions sharing a key across instances. Failing to take the
// lock is logged and the unique constraint remains the guard.
func (s *ResourceServer) lockIdempotencyKey(ctx context.Context, clientID, key string) func() {
	cnf := s.config.Idempotency
	locker := redlock.NewIdempotencyLocker(s.redis, clientID, key)
	if err := locker.WaitLock(ctx, cnf.LockDuration, cnf.LockWaitTimeout, cnf.LockPollInterval); err != nil {
		logrus.WithFields(logrus.Fields{"lock_key": locker.Key()}).Warnf("proceeding without idempotency lock: %v", err)
		return func() {}
	}
	return func() {
		// The request context may already be cancelled.
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := locker.Unlock(unlockCtx); err != nil {
			logrus.WithFields(logrus.Fields{"lock_key": locker.Key()}).Warn(err)
		}
	}
}

// GetPayment returns a submission owned by clientID.
func (s *ResourceServer) GetPayment(ctx context.Context, paymentID, clientID string) (*model.PaymentSubmission, error) {
	submission, err := s.datasource.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if submission.ClientID != clientID {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Payment with ID '%s' not found", paymentID), nil)
	}
	return submission, nil
}

// UpdatePaymentStatus moves a payment to status to. Requests that the status machine forbids fail
// with INVALID_STATUS_TRANSITION and are logged as errors, since they point at a defect in the
// calling settlement process.
func (s *ResourceServer) UpdatePaymentStatus(ctx context.Context, paymentID string, to model.PaymentStatus) (*model.PaymentSubmission, error) {
	ctx, span := otel.Tracer("payments").Start(ctx, "Updating payment status")
	defer span.End()

	if _, ok := model.ParsePaymentStatus(string(to)); !ok {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, fmt.Sprintf("Unknown payment status '%s'", to), nil)
	}

	for attempt := 0; attempt < maxStatusUpdateAttempts; attempt++ {
		submission, err := s.datasource.GetPayment(ctx, paymentID)
		if err != nil {
			return nil, err
		}

		from := submission.Status
		if err := ValidateStatusTransition(from, to); err != nil {
			notification.NotifyError(fmt.Errorf("payment %s status update rejected: %w", paymentID, err))
			return nil, err
		}

		updated, err := s.datasource.UpdatePaymentStatus(ctx, paymentID, from, to)
		if err != nil {
			return nil, err
		}
		if updated {
			submission.Status = to
			submission.UpdatedAt = s.now().UTC()
			logrus.WithFields(logrus.Fields{"payment_id": paymentID, "from": from, "to": to}).Info("payment status updated")
			return submission, nil
		}
		// Status changed underneath us; re-read and validate against the new status.
	}

	return nil, apierror.NewAPIError(apierror.ErrInvalidStatusTransition,
		fmt.Sprintf("Payment '%s' status kept changing while moving to %s", paymentID, to), nil)
}
