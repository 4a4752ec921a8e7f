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
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	initiationPath        = "Data.Initiation"
	idempotencyKeyPath    = "x-idempotency-key"
	maxIdempotencyKeySize = 40
)

var (
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	amountPattern      = regexp.MustCompile(`^\d{1,13}(\.\d{1,5})?$`)
	sortCodePattern    = regexp.MustCompile(`^\d{14}$`)
	ibanPattern        = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{1,30}$`)
	panPattern         = regexp.MustCompile(`^\d{12,19}$`)
	positiveIntPattern = regexp.MustCompile(`^[1-9]\d{0,14}$`)
	frequencyPattern   = regexp.MustCompile(`^(EvryDay|EvryWorkgDay|IntrvlWkDay:0[1-9]:0[1-7]|WkInMnthDay:0[1-5]:0[1-7]|IntrvlMnthDay:(0[1-6]|12|24):(-0[1-5]|0[1-9]|[12][0-9]|3[01])|QtrDay:(ENGLISH|SCOTTISH|RECEIVED))$`)
)

var (
	errUnsupportedScheme    = validation.NewError("unsupported_scheme", "scheme is not supported by this API version")
	errUnsupportedCurrency  = validation.NewError("unsupported_currency", "must be an ISO 4217 currency code")
	errUnsupportedFrequency = validation.NewError("unsupported_frequency", "must follow the Open Banking frequency format")
	errInvalidDate          = validation.NewError("invalid_date", "must be in the future")
	errUnexpected           = validation.NewError("unexpected", "must not be set")
)

// ValidationResult collects every field error found in a request.
type ValidationResult struct {
	Errors []apierror.FieldError
}

func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the aggregate VALIDATION_FAILED error, or nil when the request is valid.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return apierror.NewValidationError(r.Errors)
}

func (r *ValidationResult) merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
}

func (r *ValidationResult) check(path string, value interface{}, rules ...validation.Rule) {
	if err := validation.Validate(value, rules...); err != nil {
		r.Errors = append(r.Errors, toFieldError(path, err))
	}
}

func (r *ValidationResult) fail(path string, err validation.Error) {
	r.Errors = append(r.Errors, toFieldError(path, err))
}

func toFieldError(path string, err error) apierror.FieldError {
	code := apierror.OBFieldInvalid
	var verr validation.Error
	if errors.As(err, &verr) {
		switch verr.Code() {
		case validation.ErrRequired.Code(), validation.ErrNilOrNotEmpty.Code():
			code = apierror.OBFieldMissing
		case errUnsupportedScheme.Code():
			code = apierror.OBUnsupportedScheme
		case errUnsupportedCurrency.Code():
			code = apierror.OBUnsupportedCurrency
		case errUnsupportedFrequency.Code():
			code = apierror.OBUnsupportedFrequency
		case errInvalidDate.Code():
			code = apierror.OBFieldInvalidDate
		case errUnexpected.Code():
			code = apierror.OBFieldUnexpected
		}
	}
	return apierror.FieldError{ErrorCode: code, Message: err.Error(), Path: path}
}

// ValidateIdempotencyKey checks the x-idempotency-key header.
func ValidateIdempotencyKey(key string) ValidationResult {
	var result ValidationResult
	if strings.TrimSpace(key) == "" {
		result.fail(idempotencyKeyPath, validation.ErrRequired)
		return result
	}
	result.check(idempotencyKeyPath, key, validation.RuneLength(1, maxIdempotencyKeySize))
	return result
}

// ValidatePaymentInstruction reports every structural problem with instruction. It never stops
// at the first error.
func ValidatePaymentInstruction(paymentType model.PaymentType, instruction model.PaymentInstruction, rules ValidationRules, now time.Time) ValidationResult {
	var result ValidationResult
	p := func(field string) string { return initiationPath + "." + field }

	if !paymentType.IsFile() {
		result.check(p("InstructionIdentification"), instruction.InstructionIdentification, validation.Required, validation.RuneLength(1, 35))
		result.check(p("EndToEndIdentification"), instruction.EndToEndIdentification, validation.Required, validation.RuneLength(1, 35))
		result.merge(validateAmount(p("InstructedAmount"), instruction.InstructedAmount, rules))
		if instruction.CreditorAccount == nil {
			result.fail(p("CreditorAccount"), validation.ErrRequired)
		} else {
			result.merge(validateCashAccount(p("CreditorAccount"), *instruction.CreditorAccount, rules))
		}
	}
	if instruction.DebtorAccount != nil {
		result.merge(validateCashAccount(p("DebtorAccount"), *instruction.DebtorAccount, rules))
	}
	if instruction.RemittanceInformation != nil {
		result.check(p("RemittanceInformation.Reference"), instruction.RemittanceInformation.Reference, validation.RuneLength(0, 35))
		result.check(p("RemittanceInformation.Unstructured"), instruction.RemittanceInformation.Unstructured, validation.RuneLength(0, 140))
	}

	if paymentType.IsScheduled() {
		if instruction.RequestedExecutionDateTime == nil {
			result.fail(p("RequestedExecutionDateTime"), validation.ErrRequired)
		} else if !instruction.RequestedExecutionDateTime.After(now) {
			result.fail(p("RequestedExecutionDateTime"), errInvalidDate)
		}
	}

	if paymentType.IsStandingOrder() {
		result.merge(validateStandingOrder(instruction, now))
	}

	if paymentType.IsInternational() {
		result.check(p("CurrencyOfTransfer"), instruction.CurrencyOfTransfer, validation.Required, validation.Match(currencyPattern).ErrorObject(errUnsupportedCurrency))
	}

	if paymentType.IsFile() {
		result.merge(validateFile(instruction))
	}

	return result
}

func validateAmount(path string, amount *model.Amount, rules ValidationRules) ValidationResult {
	var result ValidationResult
	if amount == nil {
		result.fail(path, validation.ErrRequired)
		return result
	}
	result.check(path+".Amount", amount.Amount, validation.Required, validation.Match(amountPattern), validation.By(minimumAmount(rules.MinimumAmount)))
	result.check(path+".Currency", amount.Currency, validation.Required, validation.Match(currencyPattern).ErrorObject(errUnsupportedCurrency))
	return result
}

func minimumAmount(min decimal.Decimal) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if !amountPattern.MatchString(s) {
			return nil
		}
		if decimal.RequireFromString(s).LessThan(min) {
			return validation.NewError("amount_below_minimum", "must be at least "+min.String())
		}
		return nil
	}
}

func validateCashAccount(path string, account model.CashAccount, rules ValidationRules) ValidationResult {
	var result ValidationResult
	result.check(path+".SchemeName", account.SchemeName, validation.Required, validation.By(func(value interface{}) error {
		if !rules.acceptsScheme(value.(string)) {
			return errUnsupportedScheme
		}
		return nil
	}))
	result.check(path+".Identification", account.Identification, validation.Required, validation.RuneLength(1, 256), identificationRule(account.SchemeName))
	result.check(path+".Name", account.Name, validation.RuneLength(0, 350))
	result.check(path+".SecondaryIdentification", account.SecondaryIdentification, validation.RuneLength(0, 34))
	return result
}

func identificationRule(scheme string) validation.Rule {
	switch scheme {
	case SchemeSortCodeAccountNumber:
		return validation.Match(sortCodePattern).Error("must be a 6 digit sort code followed by an 8 digit account number")
	case SchemeIBAN:
		return validation.Match(ibanPattern).Error("must be a valid IBAN")
	case SchemePAN:
		return validation.Match(panPattern).Error("must be a 12 to 19 digit card number")
	default:
		return validation.Skip
	}
}

func validateStandingOrder(instruction model.PaymentInstruction, now time.Time) ValidationResult {
	var result ValidationResult
	p := func(field string) string { return initiationPath + "." + field }

	result.check(p("Frequency"), instruction.Frequency, validation.Required, validation.Match(frequencyPattern).ErrorObject(errUnsupportedFrequency))
	result.check(p("Reference"), instruction.Reference, validation.RuneLength(0, 35))

	if instruction.FirstPaymentDateTime == nil {
		result.fail(p("FirstPaymentDateTime"), validation.ErrRequired)
	} else if !instruction.FirstPaymentDateTime.After(now) {
		result.fail(p("FirstPaymentDateTime"), errInvalidDate)
	}

	if instruction.FinalPaymentDateTime != nil {
		if instruction.NumberOfPayments != "" {
			result.fail(p("FinalPaymentDateTime"), errUnexpected)
		}
		if instruction.FirstPaymentDateTime != nil && !instruction.FinalPaymentDateTime.After(*instruction.FirstPaymentDateTime) {
			result.fail(p("FinalPaymentDateTime"), validation.NewError("invalid_date", "must be after FirstPaymentDateTime"))
		}
	}
	result.check(p("NumberOfPayments"), instruction.NumberOfPayments, validation.Match(positiveIntPattern))
	return result
}

func validateFile(instruction model.PaymentInstruction) ValidationResult {
	var result ValidationResult
	p := func(field string) string { return initiationPath + "." + field }

	result.check(p("FileType"), instruction.FileType, validation.Required, validation.RuneLength(1, 40))
	result.check(p("FileHash"), instruction.FileHash, validation.Required, validation.RuneLength(1, 44))
	result.check(p("FileReference"), instruction.FileReference, validation.RuneLength(0, 40))
	result.check(p("NumberOfTransactions"), instruction.NumberOfTransactions, validation.Match(positiveIntPattern))
	result.check(p("ControlSum"), instruction.ControlSum, validation.Match(amountPattern))
	return result
}
