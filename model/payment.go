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

package model

import (
	"encoding/json"
	"time"
)

// PaymentType is the URL segment naming a payment submission collection.
type PaymentType string

const (
	DomesticPayment               PaymentType = "domestic-payments"
	DomesticScheduledPayment      PaymentType = "domestic-scheduled-payments"
	DomesticStandingOrder         PaymentType = "domestic-standing-orders"
	InternationalPayment          PaymentType = "international-payments"
	InternationalScheduledPayment PaymentType = "international-scheduled-payments"
	InternationalStandingOrder    PaymentType = "international-standing-orders"
	FilePayment                   PaymentType = "file-payments"
)

var PaymentTypes = []PaymentType{
	DomesticPayment,
	DomesticScheduledPayment,
	DomesticStandingOrder,
	InternationalPayment,
	InternationalScheduledPayment,
	InternationalStandingOrder,
	FilePayment,
}

func ParsePaymentType(s string) (PaymentType, bool) {
	for _, pt := range PaymentTypes {
		if string(pt) == s {
			return pt, true
		}
	}
	return "", false
}

func (t PaymentType) IsScheduled() bool {
	return t == DomesticScheduledPayment || t == InternationalScheduledPayment
}

func (t PaymentType) IsStandingOrder() bool {
	return t == DomesticStandingOrder || t == InternationalStandingOrder
}

func (t PaymentType) IsInternational() bool {
	return t == InternationalPayment || t == InternationalScheduledPayment || t == InternationalStandingOrder
}

func (t PaymentType) IsFile() bool {
	return t == FilePayment
}

// IsImmediate reports whether the payment settles through the PENDING lifecycle rather than the
// initiation lifecycle.
func (t PaymentType) IsImmediate() bool {
	return t == DomesticPayment || t == InternationalPayment
}

type PaymentStatus string

const (
	PaymentStatusPending                           PaymentStatus = "PENDING"
	PaymentStatusAcceptedSettlementInProcess       PaymentStatus = "ACCEPTED_SETTLEMENT_IN_PROCESS"
	PaymentStatusAcceptedWithoutPosting            PaymentStatus = "ACCEPTED_WITHOUT_POSTING"
	PaymentStatusRejected                          PaymentStatus = "REJECTED"
	PaymentStatusAcceptedSettlementCompleted       PaymentStatus = "ACCEPTED_SETTLEMENT_COMPLETED"
	PaymentStatusAcceptedCreditSettlementCompleted PaymentStatus = "ACCEPTED_CREDIT_SETTLEMENT_COMPLETED"
	PaymentStatusInitiationPending                 PaymentStatus = "INITIATION_PENDING"
	PaymentStatusInitiationCompleted               PaymentStatus = "INITIATION_COMPLETED"
	PaymentStatusInitiationFailed                  PaymentStatus = "INITIATION_FAILED"
	PaymentStatusCancelled                         PaymentStatus = "CANCELLED"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusAcceptedSettlementInProcess,
	PaymentStatusAcceptedWithoutPosting,
	PaymentStatusRejected,
	PaymentStatusAcceptedSettlementCompleted,
	PaymentStatusAcceptedCreditSettlementCompleted,
	PaymentStatusInitiationPending,
	PaymentStatusInitiationCompleted,
	PaymentStatusInitiationFailed,
	PaymentStatusCancelled,
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for _, st := range PaymentStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type RemittanceInformation struct {
	Unstructured string `json:"Unstructured,omitempty"`
	Reference    string `json:"Reference,omitempty"`
}

// PaymentInstruction is the union of the OB initiation payloads. Fields that do not apply to a
// payment type are left empty.
type PaymentInstruction struct {
	InstructionIdentification  string                 `json:"InstructionIdentification,omitempty"`
	EndToEndIdentification     string                 `json:"EndToEndIdentification,omitempty"`
	LocalInstrument            string                 `json:"LocalInstrument,omitempty"`
	InstructedAmount           *Amount                `json:"InstructedAmount,omitempty"`
	DebtorAccount              *CashAccount           `json:"DebtorAccount,omitempty"`
	CreditorAccount            *CashAccount           `json:"CreditorAccount,omitempty"`
	RemittanceInformation      *RemittanceInformation `json:"RemittanceInformation,omitempty"`
	RequestedExecutionDateTime *time.Time             `json:"RequestedExecutionDateTime,omitempty"`

	// Standing orders
	Frequency            string     `json:"Frequency,omitempty"`
	Reference            string     `json:"Reference,omitempty"`
	NumberOfPayments     string     `json:"NumberOfPayments,omitempty"`
	FirstPaymentDateTime *time.Time `json:"FirstPaymentDateTime,omitempty"`
	FinalPaymentDateTime *time.Time `json:"FinalPaymentDateTime,omitempty"`

	// International
	CurrencyOfTransfer string `json:"CurrencyOfTransfer,omitempty"`
	ChargeBearer       string `json:"ChargeBearer,omitempty"`

	// File
	FileType             string `json:"FileType,omitempty"`
	FileHash             string `json:"FileHash,omitempty"`
	FileReference        string `json:"FileReference,omitempty"`
	NumberOfTransactions string `json:"NumberOfTransactions,omitempty"`
	ControlSum           string `json:"ControlSum,omitempty"`
}

// PaymentSubmission is a persisted payment. Only Status and UpdatedAt change after creation.
type PaymentSubmission struct {
	PaymentID      string             `json:"payment_id"`
	ConsentID      string             `json:"consent_id"`
	ClientID       string             `json:"client_id"`
	PaymentType    PaymentType        `json:"payment_type"`
	IdempotencyKey string             `json:"idempotency_key"`
	PayloadHash    string             `json:"payload_hash"`
	Instruction    PaymentInstruction `json:"instruction"`
	Status         PaymentStatus      `json:"status"`
	APIVersion     string             `json:"api_version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// StatusUpdate asks for a payment to move to a new status. It is the payload of the
// status update queue task.
type StatusUpdate struct {
	PaymentID string        `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
}

func (s StatusUpdate) Marshal() ([]byte, error) {
	return json.Marshal(s)
}
