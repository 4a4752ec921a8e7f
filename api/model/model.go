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
	"errors"
	"strings"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func knownStatus(value interface{}) error {
	s, _ := value.(string)
	if _, ok := model.ParsePaymentStatus(s); !ok {
		return errors.New("must be one of " + strings.Join(statusNames(), ", "))
	}
	return nil
}

func statusNames() []string {
	names := make([]string, len(model.PaymentStatuses))
	for i, s := range model.PaymentStatuses {
		names[i] = string(s)
	}
	return names
}

func (p *PaymentRequest) ValidatePaymentRequest() error {
	return validation.ValidateStruct(&p.Data,
		validation.Field(&p.Data.ConsentId, validation.Required, validation.RuneLength(1, 128)),
	)
}

func (s *StatusUpdate) ValidateStatusUpdate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Status, validation.Required, validation.By(knownStatus)),
	)
}

// ValidateEnqueueStatusUpdate also requires the payment id, which the synchronous endpoint takes
// from the path.
func (s *StatusUpdate) ValidateEnqueueStatusUpdate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.PaymentId, validation.Required),
		validation.Field(&s.Status, validation.Required, validation.By(knownStatus)),
	)
}

func (a *AccountResource) ValidateAccountResource() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Payload, validation.Required),
	)
}

func (s *StatusUpdate) ToStatusUpdate(paymentID string) model.StatusUpdate {
	if paymentID == "" {
		paymentID = s.PaymentId
	}
	return model.StatusUpdate{PaymentID: paymentID, Status: model.PaymentStatus(s.Status)}
}
