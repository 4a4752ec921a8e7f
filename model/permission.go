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

import "strings"

// Permission is an Open Banking permission code granted to a TPP by an account access consent.
type Permission string

const (
	ReadAccountsBasic           Permission = "ReadAccountsBasic"
	ReadAccountsDetail          Permission = "ReadAccountsDetail"
	ReadBalances                Permission = "ReadBalances"
	ReadBeneficiariesBasic      Permission = "ReadBeneficiariesBasic"
	ReadBeneficiariesDetail     Permission = "ReadBeneficiariesDetail"
	ReadDirectDebits            Permission = "ReadDirectDebits"
	ReadOffers                  Permission = "ReadOffers"
	ReadPAN                     Permission = "ReadPAN"
	ReadParty                   Permission = "ReadParty"
	ReadPartyPSU                Permission = "ReadPartyPSU"
	ReadProducts                Permission = "ReadProducts"
	ReadScheduledPaymentsBasic  Permission = "ReadScheduledPaymentsBasic"
	ReadScheduledPaymentsDetail Permission = "ReadScheduledPaymentsDetail"
	ReadStandingOrdersBasic     Permission = "ReadStandingOrdersBasic"
	ReadStandingOrdersDetail    Permission = "ReadStandingOrdersDetail"
	ReadStatementsBasic         Permission = "ReadStatementsBasic"
	ReadStatementsDetail        Permission = "ReadStatementsDetail"
	ReadTransactionsBasic       Permission = "ReadTransactionsBasic"
	ReadTransactionsCredits     Permission = "ReadTransactionsCredits"
	ReadTransactionsDebits      Permission = "ReadTransactionsDebits"
	ReadTransactionsDetail      Permission = "ReadTransactionsDetail"
)

// AllPermissions lists every permission code in declaration order.
var AllPermissions = []Permission{
	ReadAccountsBasic,
	ReadAccountsDetail,
	ReadBalances,
	ReadBeneficiariesBasic,
	ReadBeneficiariesDetail,
	ReadDirectDebits,
	ReadOffers,
	ReadPAN,
	ReadParty,
	ReadPartyPSU,
	ReadProducts,
	ReadScheduledPaymentsBasic,
	ReadScheduledPaymentsDetail,
	ReadStandingOrdersBasic,
	ReadStandingOrdersDetail,
	ReadStatementsBasic,
	ReadStatementsDetail,
	ReadTransactionsBasic,
	ReadTransactionsCredits,
	ReadTransactionsDebits,
	ReadTransactionsDetail,
}

var permissionsByKey = func() map[string]Permission {
	m := make(map[string]Permission, len(AllPermissions))
	for _, p := range AllPermissions {
		m[strings.ToUpper(string(p))] = p
	}
	return m
}()

// ParsePermission accepts both the OB wire spelling (ReadStandingOrdersBasic) and the
// upper case constant spelling (READSTANDINGORDERSBASIC).
func ParsePermission(code string) (Permission, bool) {
	p, ok := permissionsByKey[strings.ToUpper(strings.TrimSpace(code))]
	return p, ok
}

func (p Permission) Valid() bool {
	_, ok := ParsePermission(string(p))
	return ok
}
