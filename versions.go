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
	"fmt"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/shopspring/decimal"
)

// Account identification schemes.
const (
	SchemeSortCodeAccountNumber = "UK.OBIE.SortCodeAccountNumber"
	SchemeIBAN                  = "UK.OBIE.IBAN"
	SchemePAN                   = "UK.OBIE.PAN"
	SchemePaym                  = "UK.OBIE.Paym"
	SchemeBBAN                  = "UK.OBIE.BBAN"
	SchemeWallet                = "UK.OBIE.Wallet"
)

// ValidationRules are the version specific limits applied to payment instructions.
type ValidationRules struct {
	MinimumAmount   decimal.Decimal
	AcceptedSchemes []string
}

func (r ValidationRules) acceptsScheme(scheme string) bool {
	for _, s := range r.AcceptedSchemes {
		if s == scheme {
			return true
		}
	}
	return false
}

// StatusTransformer renders an internal payment status in a version's wire vocabulary.
type StatusTransformer func(model.PaymentStatus) string

// VersionConfig replaces per version handler code: every version is served by the same handlers
// parameterised with one of these.
type VersionConfig struct {
	Version      string
	Redaction    RedactionRules
	Validation   ValidationRules
	StatusCode   StatusTransformer
	PaymentTypes []model.PaymentType
}

func (v VersionConfig) AcceptsPaymentType(t model.PaymentType) bool {
	for _, pt := range v.PaymentTypes {
		if pt == t {
			return true
		}
	}
	return false
}

var v3StatusCodes = map[model.PaymentStatus]string{
	model.PaymentStatusPending:                           "Pending",
	model.PaymentStatusAcceptedSettlementInProcess:       "AcceptedSettlementInProcess",
	model.PaymentStatusAcceptedWithoutPosting:            "AcceptedWithoutPosting",
	model.PaymentStatusRejected:                          "Rejected",
	model.PaymentStatusAcceptedSettlementCompleted:       "AcceptedSettlementCompleted",
	model.PaymentStatusAcceptedCreditSettlementCompleted: "AcceptedCreditSettlementCompleted",
	model.PaymentStatusInitiationPending:                 "InitiationPending",
	model.PaymentStatusInitiationCompleted:               "InitiationCompleted",
	model.PaymentStatusInitiationFailed:                  "InitiationFailed",
	model.PaymentStatusCancelled:                         "Cancelled",
}

// ISO 20022 external payment transaction status codes.
var v4StatusCodes = map[model.PaymentStatus]string{
	model.PaymentStatusPending:                           "PDNG",
	model.PaymentStatusAcceptedSettlementInProcess:       "ACSP",
	model.PaymentStatusAcceptedWithoutPosting:            "ACWP",
	model.PaymentStatusRejected:                          "RJCT",
	model.PaymentStatusAcceptedSettlementCompleted:       "ACSC",
	model.PaymentStatusAcceptedCreditSettlementCompleted: "ACCC",
	model.PaymentStatusInitiationPending:                 "PDNG",
	model.PaymentStatusInitiationCompleted:               "ACCP",
	model.PaymentStatusInitiationFailed:                  "RJCT",
	model.PaymentStatusCancelled:                         "CANC",
}

func lookupStatus(codes map[model.PaymentStatus]string) StatusTransformer {
	return func(s model.PaymentStatus) string {
		if code, ok := codes[s]; ok {
			return code
		}
		return string(s)
	}
}

// versionOrder lists the served versions oldest first.
var versionOrder = []string{"v3.1", "v3.1.1", "v3.1.2", "v3.1.3", "v3.1.4", "v3.1.5", "v3.1.6", "v3.1.7", "v3.1.8", "v3.1.9", "v3.1.10", "v4.0"}

var versions = buildVersions()

func buildVersions() map[string]VersionConfig {
	v3Schemes := []string{SchemeSortCodeAccountNumber, SchemeIBAN, SchemePAN, SchemePaym, SchemeBBAN}
	v3 := VersionConfig{
		Redaction: defaultRedactionRules(),
		Validation: ValidationRules{
			MinimumAmount:   decimal.RequireFromString("0.01"),
			AcceptedSchemes: v3Schemes,
		},
		StatusCode:   lookupStatus(v3StatusCodes),
		PaymentTypes: model.PaymentTypes,
	}

	table := map[string]VersionConfig{}
	for _, name := range versionOrder[:len(versionOrder)-1] {
		cfg := v3
		cfg.Version = name
		table[name] = cfg
	}

	v4 := v3
	v4.Version = versionOrder[len(versionOrder)-1]
	v4.Validation.AcceptedSchemes = append(append([]string{}, v3Schemes...), SchemeWallet)
	v4.StatusCode = lookupStatus(v4StatusCodes)
	table[v4.Version] = v4

	return table
}

// LookupVersion returns the configuration for an API version such as "v3.1.10".
func LookupVersion(version string) (VersionConfig, error) {
	cfg, ok := versions[version]
	if !ok {
		return VersionConfig{}, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("API version '%s' is not supported", version), nil)
	}
	return cfg, nil
}

// SupportedVersions lists every served API version, oldest first.
func SupportedVersions() []string {
	return append([]string(nil), versionOrder...)
}
