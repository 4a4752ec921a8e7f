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

type FundsConfirmationRequest struct {
	ConsentID        string `json:"ConsentId"`
	Reference        string `json:"Reference"`
	InstructedAmount Amount `json:"InstructedAmount"`
}

// FundsConfirmation records the answer given to a CBPII.
type FundsConfirmation struct {
	FundsConfirmationID string    `json:"FundsConfirmationId"`
	ConsentID           string    `json:"ConsentId"`
	ClientID            string    `json:"-"`
	Reference           string    `json:"Reference"`
	FundsAvailable      bool      `json:"FundsAvailable"`
	InstructedAmount    Amount    `json:"InstructedAmount"`
	CreationDateTime    time.Time `json:"CreationDateTime"`
}
