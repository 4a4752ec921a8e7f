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
	"embed"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/config"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/database"
	redis_db "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/redis-db"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var SQLFiles embed.FS

// ResourceServer serves account information, payment initiation and funds confirmation
// resources on behalf of consents held in the consent store.
type ResourceServer struct {
	datasource database.IDataSource
	consents   *ConsentResolver
	redis      redis.UniversalClient
	queue      *Queue
	config     *config.Configuration
	now        func() time.Time
}

// NewResourceServer wires the server from the loaded configuration. Redis is optional: without it
// payment creation relies on the storage unique constraint alone and status updates cannot be
// queued.
func NewResourceServer(db database.IDataSource, store ConsentStore) (*ResourceServer, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	server := &ResourceServer{
		datasource: db,
		consents:   NewConsentResolver(store),
		config:     configuration,
		now:        time.Now,
	}

	if configuration.Redis.Dns != "" {
		redisClient, err := redis_db.NewRedisClient(redis_db.SplitAddresses(configuration.Redis.Dns), configuration.Redis.SkipTLSVerify)
		if err != nil {
			return nil, err
		}
		server.redis = redisClient.Client()
		server.queue, err = NewQueue(configuration)
		if err != nil {
			return nil, err
		}
	} else {
		logrus.Warn("redis is not configured: idempotency locking and queued status updates are disabled")
	}

	return server, nil
}

func (s *ResourceServer) Config() *config.Configuration {
	return s.config
}

func (s *ResourceServer) Consents() *ConsentResolver {
	return s.consents
}

// Close releases the redis and queue connections.
func (s *ResourceServer) Close() error {
	if s.queue != nil {
		if err := s.queue.Close(); err != nil {
			return err
		}
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func (s *ResourceServer) pageSize() int {
	if s.config.Pagination.PageSize <= 0 {
		return config.DEFAULT_PAGE_SIZE
	}
	return s.config.Pagination.PageSize
}
