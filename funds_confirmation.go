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

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

// availableBalancePreference is the order in which balances answer a funds check.
var availableBalancePreference = []string{
	model.BalanceTypeInterimAvailable,
	model.BalanceTypeClosingAvailable,
	model.BalanceTypeExpected,
}

// ValidateFundsConfirmationRequest checks a CBPII funds confirmation request body.
func ValidateFundsConfirmationRequest(consentID string, req model.FundsConfirmationRequest, rules ValidationRules) ValidationResult {
	var result ValidationResult
	if req.ConsentID != "" && req.ConsentID != consentID {
		result.fail("Data.ConsentId", validation.NewError("consent_mismatch", "must match the consent of the request"))
	}
	result.check("Data.Reference", req.Reference, validation.Required, validation.RuneLength(1, 35))
	amount := req.InstructedAmount
	result.merge(validateAmount("Data.InstructedAmount", &amount, rules))
	return result
}

// ConfirmFunds answers whether the consented account can cover the instructed amount and records
// the answer.
func (s *ResourceServer) ConfirmFunds(ctx context.Context, v VersionConfig, consentID, clientID string, req model.FundsConfirmationRequest) (*model.FundsConfirmation, error) {
	ctx, span := otel.Tracer("funds-confirmation").Start(ctx, "Confirming funds")
	defer span.End()

	if err := ValidateFundsConfirmationRequest(consentID, req, v.Validation).Err(); err != nil {
		return nil, err
	}

	consent, err := s.consents.ResolveFundsConfirmationConsent(ctx, consentID, clientID)
	if err != nil {
		return nil, err
	}

	available := false
	if consent.AccountID == "" {
		logrus.WithFields(logrus.Fields{"consent_id": consentID}).Warn("funds confirmation consent has no resolved account")
	} else {
		balances, err := s.balancesForAccount(ctx, consent.AccountID)
		if err != nil {
			return nil, err
		}
		available = fundsAvailable(balances, req.InstructedAmount)
	}

	confirmation := &model.FundsConfirmation{
		FundsConfirmationID: model.GenerateUUIDWithSuffix("fc"),
		ConsentID:           consentID,
		ClientID:            clientID,
		Reference:           req.Reference,
		FundsAvailable:      available,
		InstructedAmount:    req.InstructedAmount,
		CreationDateTime:    s.now().UTC(),
	}
	if err := s.datasource.CreateFundsConfirmation(ctx, confirmation); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"funds_confirmation_id": confirmation.FundsConfirmationID,
		"consent_id":            consentID,
		"funds_available":       available,
	}).Info("funds confirmation recorded")
	return confirmation, nil
}

// fundsAvailable reports whether the preferred available balance in the instructed currency,
// including credit lines marked as included, covers the instructed amount.
func fundsAvailable(balances []model.Balance, instructed model.Amount) bool {
	want, err := decimal.NewFromString(instructed.Amount)
	if err != nil {
		return false
	}

	balance := preferredBalance(balances, instructed.Currency)
	if balance == nil {
		return false
	}

	have, err := decimal.NewFromString(balance.Amount.Amount)
	if err != nil {
		logrus.WithFields(logrus.Fields{"account_id": balance.AccountID}).Warnf("balance amount is not a decimal: %v", err)
		return false
	}
	if balance.CreditDebitIndicator == model.Debit {
		have = have.Neg()
	}
	for _, line := range balance.CreditLine {
		if !line.Included || line.Amount == nil || line.Amount.Currency != instructed.Currency {
			continue
		}
		if credit, err := decimal.NewFromString(line.Amount.Amount); err == nil {
			have = have.Add(credit)
		}
	}
	return have.GreaterThanOrEqual(want)
}

func preferredBalance(balances []model.Balance, currency string) *model.Balance {
	for _, balanceType := range availableBalancePreference {
		for i := range balances {
			if balances[i].Type == balanceType && balances[i].Amount.Currency == currency {
				return &balances[i]
			}
		}
	}
	return nil
}
