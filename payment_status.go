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
	"fmt"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
)

// paymentStatusSuccessors lists the statuses each status may move to directly.
var paymentStatusSuccessors = map[model.PaymentStatus][]model.PaymentStatus{
	model.PaymentStatusPending: {
		model.PaymentStatusAcceptedSettlementInProcess,
		model.PaymentStatusAcceptedWithoutPosting,
		model.PaymentStatusRejected,
	},
	model.PaymentStatusAcceptedSettlementInProcess: {
		model.PaymentStatusAcceptedSettlementCompleted,
		model.PaymentStatusAcceptedCreditSettlementCompleted,
	},
	model.PaymentStatusInitiationPending: {
		model.PaymentStatusInitiationCompleted,
		model.PaymentStatusInitiationFailed,
		model.PaymentStatusCancelled,
	},
}

var terminalPaymentStatuses = map[model.PaymentStatus]bool{
	model.PaymentStatusRejected:                          true,
	model.PaymentStatusAcceptedSettlementCompleted:       true,
	model.PaymentStatusAcceptedCreditSettlementCompleted: true,
	model.PaymentStatusInitiationFailed:                  true,
	model.PaymentStatusInitiationCompleted:               true,
	model.PaymentStatusCancelled:                         true,
}

// IsTerminalPaymentStatus reports whether no transition may leave status.
func IsTerminalPaymentStatus(status model.PaymentStatus) bool {
	return terminalPaymentStatuses[status]
}

// ValidateStatusTransition returns INVALID_STATUS_TRANSITION unless to is a direct successor of from.
func ValidateStatusTransition(from, to model.PaymentStatus) error {
	if IsTerminalPaymentStatus(from) {
		return invalidTransition(from, to, "status is terminal")
	}
	for _, next := range paymentStatusSuccessors[from] {
		if next == to {
			return nil
		}
	}
	return invalidTransition(from, to, "not a permitted successor")
}

// InitialPaymentStatus is the status a new submission is created in.
func InitialPaymentStatus(paymentType model.PaymentType) model.PaymentStatus {
	if paymentType.IsImmediate() {
		return model.PaymentStatusPending
	}
	return model.PaymentStatusInitiationPending
}

func invalidTransition(from, to model.PaymentStatus, reason string) error {
	return apierror.NewAPIError(apierror.ErrInvalidStatusTransition,
		fmt.Sprintf("Cannot move payment from %s to %s: %s", from, to, reason), nil)
}
