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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePermission(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		want   Permission
		wantOK bool
	}{
		{name: "wire spelling", code: "ReadStandingOrdersBasic", want: ReadStandingOrdersBasic, wantOK: true},
		{name: "constant spelling", code: "READSTANDINGORDERSBASIC", want: ReadStandingOrdersBasic, wantOK: true},
		{name: "surrounding spaces", code: "  ReadBalances ", want: ReadBalances, wantOK: true},
		{name: "unknown code", code: "ReadEverything", wantOK: false},
		{name: "empty", code: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePermission(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAllPermissionsAreValid(t *testing.T) {
	seen := map[Permission]bool{}
	for _, p := range AllPermissions {
		assert.True(t, p.Valid(), string(p))
		assert.False(t, seen[p], "duplicate permission %s", p)
		seen[p] = true
	}
	assert.False(t, Permission("ReadNothing").Valid())
}
