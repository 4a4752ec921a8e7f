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

// Package redaction removes fields from account resources that a consent's permissions do not
// release.
package redaction

import "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"

// Rule clears one or more fields on a copy of a resource. Rules must only remove data.
type Rule[T any] func(*T)

// Table binds the permissions that carry a redaction to the rules they trigger.
type Table[T any] map[model.Permission][]Rule[T]

// Filter applies every rule bound to every granted permission to a copy of each item and
// returns the copies. The input page is never modified.
func Filter[T any](page []T, granted []model.Permission, table Table[T]) []T {
	if page == nil {
		return nil
	}
	out := make([]T, len(page))
	copy(out, page)

	rules := rulesFor(granted, table)
	if len(rules) == 0 {
		return out
	}
	for i := range out {
		for _, rule := range rules {
			rule(&out[i])
		}
	}
	return out
}

func rulesFor[T any](granted []model.Permission, table Table[T]) []Rule[T] {
	seen := make(map[model.Permission]struct{}, len(granted))
	var rules []Rule[T]
	for _, p := range granted {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		rules = append(rules, table[p]...)
	}
	return rules
}
