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
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/redaction"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
)

// RedactionRules holds one rule table per account resource type.
type RedactionRules struct {
	Beneficiaries     redaction.Table[model.Beneficiary]
	StandingOrders    redaction.Table[model.StandingOrder]
	DirectDebits      redaction.Table[model.DirectDebit]
	ScheduledPayments redaction.Table[model.ScheduledPayment]
	Statements        redaction.Table[model.Statement]
	Offers            redaction.Table[model.Offer]
	Balances          redaction.Table[model.Balance]
}

// defaultRedactionRules are the Basic permission rules shared by every API version. Direct debits,
// offers and balances have no Basic variant and are never redacted.
func defaultRedactionRules() RedactionRules {
	return RedactionRules{
		Beneficiaries: redaction.Table[model.Beneficiary]{
			model.ReadBeneficiariesBasic: {
				func(b *model.Beneficiary) { b.CreditorAccount = nil },
				func(b *model.Beneficiary) { b.CreditorAgent = nil },
			},
		},
		StandingOrders: redaction.Table[model.StandingOrder]{
			model.ReadStandingOrdersBasic: {
				func(s *model.StandingOrder) { s.CreditorAccount = nil },
				func(s *model.StandingOrder) { s.CreditorAgent = nil },
			},
		},
		ScheduledPayments: redaction.Table[model.ScheduledPayment]{
			model.ReadScheduledPaymentsBasic: {
				func(s *model.ScheduledPayment) { s.CreditorAccount = nil },
				func(s *model.ScheduledPayment) { s.CreditorAgent = nil },
			},
		},
		Statements: redaction.Table[model.Statement]{
			model.ReadStatementsBasic: {
				func(s *model.Statement) {
					s.StatementAmount = nil
					s.StatementBenefit = nil
					s.StatementFee = nil
					s.StatementInterest = nil
					s.StatementRate = nil
					s.StatementValue = nil
				},
			},
		},
		DirectDebits: redaction.Table[model.DirectDebit]{},
		Offers:       redaction.Table[model.Offer]{},
		Balances:     redaction.Table[model.Balance]{},
	}
}
