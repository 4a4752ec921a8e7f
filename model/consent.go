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

import "time"

// ConsentStatus is owned by the consent store. This service only reads it.
type ConsentStatus string

const (
	ConsentStatusAwaitingAuthorisation ConsentStatus = "AwaitingAuthorisation"
	ConsentStatusRejected              ConsentStatus = "Rejected"
	ConsentStatusAuthorised            ConsentStatus = "Authorised"
	ConsentStatusConsumed              ConsentStatus = "Consumed"
	ConsentStatusAwaitingUpload        ConsentStatus = "AwaitingUpload"
)

// Consent is the request scoped view of an account access or payment consent.
type Consent struct {
	ConsentID            string        `json:"consent_id"`
	ClientID             string        `json:"client_id"`
	Status               ConsentStatus `json:"status"`
	AccountIDs           []string      `json:"account_ids"`
	Permissions          []Permission  `json:"permissions"`
	ExpirationDateTime   *time.Time    `json:"expiration_date_time,omitempty"`
	CreationDateTime     time.Time     `json:"creation_date_time"`
	StatusUpdateDateTime time.Time     `json:"status_update_date_time"`
}

// IsAuthorised reports whether the consent is Authorised.
func (c *Consent) IsAuthorised() bool {
	return c.Status == ConsentStatusAuthorised
}

// IsExpired reports whether the consent carries an expiration that is not after now.
// A consent without an expiration never expires.
func (c *Consent) IsExpired(now time.Time) bool {
	return c.ExpirationDateTime != nil && !c.ExpirationDateTime.After(now)
}

// HasAccount reports whether accountID is one of the consent's authorised accounts.
func (c *Consent) HasAccount(accountID string) bool {
	for _, id := range c.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// FundsConfirmationConsent authorises a CBPII to ask whether funds are available on one account.
type FundsConfirmationConsent struct {
	ConsentID            string        `json:"consent_id"`
	ClientID             string        `json:"client_id"`
	Status               ConsentStatus `json:"status"`
	DebtorAccount        CashAccount   `json:"debtor_account"`
	AccountID            string        `json:"account_id"`
	ExpirationDateTime   *time.Time    `json:"expiration_date_time,omitempty"`
	CreationDateTime     time.Time     `json:"creation_date_time"`
	StatusUpdateDateTime time.Time     `json:"status_update_date_time"`
}

func (c *FundsConfirmationConsent) IsAuthorised() bool {
	return c.Status == ConsentStatusAuthorised
}

func (c *FundsConfirmationConsent) IsExpired(now time.Time) bool {
	return c.ExpirationDateTime != nil && !c.ExpirationDateTime.After(now)
}
