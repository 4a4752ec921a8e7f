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

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestValidateAndAddDefaults(t *testing.T) {
	// Test case with empty DataSource DNS
	cnf := Configuration{
		ConsentStore: ConsentStoreConfig{BaseUrl: "http://consents:8080"},
	}

	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "data source DNS is required" {
		t.Errorf("Expected data source DNS required error, got %v", err)
	}

	cnf = Configuration{
		DataSource: DataSourceConfig{Dns: "postgres://localhost:5432"},
	}

	err = cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "consent store base url is required" {
		t.Errorf("Expected consent store base url required error, got %v", err)
	}

	// Test case with all required fields filled, expect no error
	cnf = Configuration{
		DataSource:   DataSourceConfig{Dns: "some-dns"},
		ConsentStore: ConsentStoreConfig{BaseUrl: " http://consents:8080/ "},
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.ProjectName != "OB Resource Server" {
		t.Errorf("Expected default project name, got %s", cnf.ProjectName)
	}
	if cnf.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port %s, got %s", DEFAULT_PORT, cnf.Server.Port)
	}
	if cnf.ConsentStore.BaseUrl != "http://consents:8080" {
		t.Errorf("Expected trimmed consent store url, got %q", cnf.ConsentStore.BaseUrl)
	}
	if cnf.Pagination.PageSize != DEFAULT_PAGE_SIZE {
		t.Errorf("Expected default page size %d, got %d", DEFAULT_PAGE_SIZE, cnf.Pagination.PageSize)
	}
	if cnf.Idempotency.LockDuration != 30*time.Second {
		t.Errorf("Expected default lock duration, got %s", cnf.Idempotency.LockDuration)
	}
	if cnf.Queue.StatusUpdateQueue != "payment_status_updates" {
		t.Errorf("Expected default status update queue, got %s", cnf.Queue.StatusUpdateQueue)
	}
	if cnf.RateLimit.RequestsPerSecond != nil || cnf.RateLimit.Burst != nil {
		t.Errorf("Expected rate limiting to stay disabled")
	}
}

func TestValidateAndAddDefaultsCapsPageSize(t *testing.T) {
	cnf := Configuration{
		DataSource:   DataSourceConfig{Dns: "some-dns"},
		ConsentStore: ConsentStoreConfig{BaseUrl: "http://consents"},
		Pagination:   PaginationConfig{PageSize: 50000},
	}
	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.Pagination.PageSize != MAX_PAGE_SIZE {
		t.Errorf("Expected page size %d, got %d", MAX_PAGE_SIZE, cnf.Pagination.PageSize)
	}
}

func TestValidateAndAddDefaultsRateLimit(t *testing.T) {
	rps := 10.0
	cnf := Configuration{
		DataSource:   DataSourceConfig{Dns: "some-dns"},
		ConsentStore: ConsentStoreConfig{BaseUrl: "http://consents"},
		RateLimit:    RateLimitConfig{RequestsPerSecond: &rps},
	}
	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.RateLimit.Burst == nil || *cnf.RateLimit.Burst != 20 {
		t.Errorf("Expected burst of 20, got %v", cnf.RateLimit.Burst)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "obrs.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName:  "Temp Project",
		DataSource:   DataSourceConfig{Dns: "temp-dns"},
		Redis:        RedisConfig{Dns: "temp-redis"},
		ConsentStore: ConsentStoreConfig{BaseUrl: "http://consents"},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	// Set an environment variable to override the project name
	os.Setenv("OBRS_PROJECT_NAME", "Env Project")
	defer os.Unsetenv("OBRS_PROJECT_NAME")
	os.Setenv("OBRS_IDEMPOTENCY_LOCK_DURATION", "2m")
	defer os.Unsetenv("OBRS_IDEMPOTENCY_LOCK_DURATION")

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if loadedConfig.ProjectName != "Env Project" {
		t.Errorf("Expected ProjectName to be 'Env Project', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.DataSource.Dns != "temp-dns" {
		t.Errorf("Expected DataSource.Dns to be 'temp-dns', got '%s'", loadedConfig.DataSource.Dns)
	}
	if loadedConfig.Idempotency.LockDuration != 2*time.Minute {
		t.Errorf("Expected lock duration of 2m, got %s", loadedConfig.Idempotency.LockDuration)
	}
}

func TestInitConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "obrs.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName:  "InitConfig Test",
		DataSource:   DataSourceConfig{Dns: "init-config-dns"},
		ConsentStore: ConsentStoreConfig{BaseUrl: "http://consents"},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	if err := InitConfig(tmpFile.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if loadedConfig.ProjectName != "InitConfig Test" {
		t.Errorf("Expected ProjectName to be 'InitConfig Test', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.DataSource.Dns != "init-config-dns" {
		t.Errorf("Expected DataSource.Dns to be 'init-config-dns', got '%s'", loadedConfig.DataSource.Dns)
	}
}

func TestMockConfig(t *testing.T) {
	MockConfig(&Configuration{ProjectName: "mock"})
	cnf, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if cnf.ProjectName != "mock" {
		t.Errorf("Expected mock config, got %s", cnf.ProjectName)
	}
}
