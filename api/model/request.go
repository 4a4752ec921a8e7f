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

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
)

// PaymentRequestData is the Data section of an OB payment initiation request.
type PaymentRequestData struct {
	ConsentId  string                   `json:"ConsentId"`
	Initiation model.PaymentInstruction `json:"Initiation"`
}

// PaymentRequest is the body of POST /pisp/{payment-type}.
type PaymentRequest struct {
	Data PaymentRequestData     `json:"Data"`
	Risk map[string]interface{} `json:"Risk"`
}

// FundsConfirmationRequest is the body of POST /cbpii/funds-confirmations.
type FundsConfirmationRequest struct {
	Data model.FundsConfirmationRequest `json:"Data"`
}

// StatusUpdate is the body of the internal payment status endpoints.
type StatusUpdate struct {
	PaymentId string `json:"payment_id"`
	Status    string `json:"status"`
}

// AccountResource is the body of the internal account resource seeding endpoint.
type AccountResource struct {
	Payload json.RawMessage `json:"payload"`
}
