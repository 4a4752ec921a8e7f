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

// ResourceType names an account scoped resource collection.
type ResourceType string

const (
	ResourceBeneficiaries     ResourceType = "beneficiaries"
	ResourceStandingOrders    ResourceType = "standing-orders"
	ResourceDirectDebits      ResourceType = "direct-debits"
	ResourceScheduledPayments ResourceType = "scheduled-payments"
	ResourceStatements        ResourceType = "statements"
	ResourceOffers            ResourceType = "offers"
	ResourceBalances          ResourceType = "balances"
)

// ResourceTypes lists every account scoped resource type.
var ResourceTypes = []ResourceType{
	ResourceBeneficiaries,
	ResourceStandingOrders,
	ResourceDirectDebits,
	ResourceScheduledPayments,
	ResourceStatements,
	ResourceOffers,
	ResourceBalances,
}

func ParseResourceType(s string) (ResourceType, bool) {
	for _, rt := range ResourceTypes {
		if string(rt) == s {
			return rt, true
		}
	}
	return "", false
}

// StoredResource is the raw storage row behind every account scoped resource.
type StoredResource struct {
	ResourceID   string          `json:"resource_id"`
	AccountID    string          `json:"account_id"`
	ResourceType ResourceType    `json:"resource_type"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CashAccount struct {
	SchemeName              string `json:"SchemeName"`
	Identification          string `json:"Identification"`
	Name                    string `json:"Name,omitempty"`
	SecondaryIdentification string `json:"SecondaryIdentification,omitempty"`
}

type FinancialInstitution struct {
	SchemeName     string `json:"SchemeName,omitempty"`
	Identification string `json:"Identification,omitempty"`
	Name           string `json:"Name,omitempty"`
}

// Amount is an OB active or historic currency amount. The amount is kept as the decimal string
// received on the wire.
type Amount struct {
	Amount   string `json:"Amount"`
	Currency string `json:"Currency"`
}

type Beneficiary struct {
	AccountID       string                `json:"AccountId"`
	BeneficiaryID   string                `json:"BeneficiaryId"`
	BeneficiaryType string                `json:"BeneficiaryType,omitempty"`
	Reference       string                `json:"Reference,omitempty"`
	CreditorAgent   *FinancialInstitution `json:"CreditorAgent,omitempty"`
	CreditorAccount *CashAccount          `json:"CreditorAccount,omitempty"`
}

type StandingOrder struct {
	AccountID               string                `json:"AccountId"`
	StandingOrderID         string                `json:"StandingOrderId"`
	Frequency               string                `json:"Frequency"`
	Reference               string                `json:"Reference,omitempty"`
	StandingOrderStatusCode string                `json:"StandingOrderStatusCode,omitempty"`
	FirstPaymentDateTime    *time.Time            `json:"FirstPaymentDateTime,omitempty"`
	NextPaymentDateTime     *time.Time            `json:"NextPaymentDateTime,omitempty"`
	LastPaymentDateTime     *time.Time            `json:"LastPaymentDateTime,omitempty"`
	FinalPaymentDateTime    *time.Time            `json:"FinalPaymentDateTime,omitempty"`
	FirstPaymentAmount      *Amount               `json:"FirstPaymentAmount,omitempty"`
	NextPaymentAmount       *Amount               `json:"NextPaymentAmount,omitempty"`
	LastPaymentAmount       *Amount               `json:"LastPaymentAmount,omitempty"`
	FinalPaymentAmount      *Amount               `json:"FinalPaymentAmount,omitempty"`
	CreditorAgent           *FinancialInstitution `json:"CreditorAgent,omitempty"`
	CreditorAccount         *CashAccount          `json:"CreditorAccount,omitempty"`
}

type DirectDebit struct {
	AccountID               string     `json:"AccountId"`
	DirectDebitID           string     `json:"DirectDebitId"`
	MandateIdentification   string     `json:"MandateIdentification"`
	DirectDebitStatusCode   string     `json:"DirectDebitStatusCode,omitempty"`
	Name                    string     `json:"Name"`
	Frequency               string     `json:"Frequency,omitempty"`
	PreviousPaymentDateTime *time.Time `json:"PreviousPaymentDateTime,omitempty"`
	PreviousPaymentAmount   *Amount    `json:"PreviousPaymentAmount,omitempty"`
}

type ScheduledPayment struct {
	AccountID                string                `json:"AccountId"`
	ScheduledPaymentID       string                `json:"ScheduledPaymentId"`
	ScheduledPaymentDateTime time.Time             `json:"ScheduledPaymentDateTime"`
	ScheduledType            string                `json:"ScheduledType"`
	Reference                string                `json:"Reference,omitempty"`
	InstructedAmount         Amount                `json:"InstructedAmount"`
	CreditorAgent            *FinancialInstitution `json:"CreditorAgent,omitempty"`
	CreditorAccount          *CashAccount          `json:"CreditorAccount,omitempty"`
}

// StatementLine is one typed amount line of a statement (benefit, fee, interest or amount).
type StatementLine struct {
	CreditDebitIndicator string `json:"CreditDebitIndicator"`
	Type                 string `json:"Type"`
	Amount               Amount `json:"Amount"`
}

// StatementMeasure is a typed rate or value line of a statement.
type StatementMeasure struct {
	Type  string `json:"Type"`
	Value string `json:"Value"`
}

type Statement struct {
	AccountID            string             `json:"AccountId"`
	StatementID          string             `json:"StatementId"`
	StatementReference   string             `json:"StatementReference,omitempty"`
	Type                 string             `json:"Type"`
	StartDateTime        time.Time          `json:"StartDateTime"`
	EndDateTime          time.Time          `json:"EndDateTime"`
	CreationDateTime     time.Time          `json:"CreationDateTime"`
	StatementDescription []string           `json:"StatementDescription,omitempty"`
	StatementBenefit     []StatementLine    `json:"StatementBenefit,omitempty"`
	StatementFee         []StatementLine    `json:"StatementFee,omitempty"`
	StatementInterest    []StatementLine    `json:"StatementInterest,omitempty"`
	StatementAmount      []StatementLine    `json:"StatementAmount,omitempty"`
	StatementRate        []StatementMeasure `json:"StatementRate,omitempty"`
	StatementValue       []StatementMeasure `json:"StatementValue,omitempty"`
}

type Offer struct {
	AccountID     string     `json:"AccountId"`
	OfferID       string     `json:"OfferId"`
	OfferType     string     `json:"OfferType,omitempty"`
	Description   string     `json:"Description,omitempty"`
	StartDateTime *time.Time `json:"StartDateTime,omitempty"`
	EndDateTime   *time.Time `json:"EndDateTime,omitempty"`
	Rate          string     `json:"Rate,omitempty"`
	Value         int        `json:"Value,omitempty"`
	Term          string     `json:"Term,omitempty"`
	URL           string     `json:"URL,omitempty"`
	Amount        *Amount    `json:"Amount,omitempty"`
	Fee           *Amount    `json:"Fee,omitempty"`
}

type CreditLine struct {
	Included bool    `json:"Included"`
	Type     string  `json:"Type,omitempty"`
	Amount   *Amount `json:"Amount,omitempty"`
}

// Balance types used by funds confirmation.
const (
	BalanceTypeInterimAvailable = "InterimAvailable"
	BalanceTypeClosingAvailable = "ClosingAvailable"
	BalanceTypeExpected         = "Expected"
	BalanceTypeInterimBooked    = "InterimBooked"
)

const (
	Credit = "Credit"
	Debit  = "Debit"
)

type Balance struct {
	AccountID            string       `json:"AccountId"`
	CreditDebitIndicator string       `json:"CreditDebitIndicator"`
	Type                 string       `json:"Type"`
	DateTime             time.Time    `json:"DateTime"`
	Amount               Amount       `json:"Amount"`
	CreditLine           []CreditLine `json:"CreditLine,omitempty"`
}
