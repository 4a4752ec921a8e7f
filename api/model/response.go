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
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
)

type Links struct {
	Self  string `json:"Self"`
	First string `json:"First,omitempty"`
	Prev  string `json:"Prev,omitempty"`
	Next  string `json:"Next,omitempty"`
	Last  string `json:"Last,omitempty"`
}

type Meta struct {
	TotalPages int `json:"TotalPages"`
}

// Response is the OB read/write response envelope.
type Response struct {
	Data  interface{} `json:"Data"`
	Links Links       `json:"Links"`
	Meta  Meta        `json:"Meta"`
}

// paymentIDFields names the id attribute of each payment resource.
var paymentIDFields = map[model.PaymentType]string{
	model.DomesticPayment:               "DomesticPaymentId",
	model.DomesticScheduledPayment:      "DomesticScheduledPaymentId",
	model.DomesticStandingOrder:         "DomesticStandingOrderId",
	model.InternationalPayment:          "InternationalPaymentId",
	model.InternationalScheduledPayment: "InternationalScheduledPaymentId",
	model.InternationalStandingOrder:    "InternationalStandingOrderId",
	model.FilePayment:                   "FilePaymentId",
}

// PaymentData renders a submission as the Data section of a payment response. status is the
// submission status already rendered in the version's vocabulary.
func PaymentData(submission *model.PaymentSubmission, status string) map[string]interface{} {
	idField, ok := paymentIDFields[submission.PaymentType]
	if !ok {
		idField = "PaymentId"
	}
	return map[string]interface{}{
		idField:                submission.PaymentID,
		"ConsentId":            submission.ConsentID,
		"Status":               status,
		"CreationDateTime":     submission.CreatedAt.Format(time.RFC3339),
		"StatusUpdateDateTime": submission.UpdatedAt.Format(time.RFC3339),
		"Initiation":           submission.Instruction,
	}
}

// ResourceData wraps a page of account resources under the OB collection name, e.g.
// {"StandingOrder": [...]}.
func ResourceData(resourceType model.ResourceType, items []interface{}) map[string]interface{} {
	return map[string]interface{}{collectionNames[resourceType]: items}
}

var collectionNames = map[model.ResourceType]string{
	model.ResourceBeneficiaries:     "Beneficiary",
	model.ResourceStandingOrders:    "StandingOrder",
	model.ResourceDirectDebits:      "DirectDebit",
	model.ResourceScheduledPayments: "ScheduledPayment",
	model.ResourceStatements:        "Statement",
	model.ResourceOffers:            "Offer",
	model.ResourceBalances:          "Balance",
}
