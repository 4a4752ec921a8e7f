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

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
)

func (d Datasource) CreateAccountResource(ctx context.Context, resource *model.StoredResource) error {
	ctx, span := otel.Tracer("account resources").Start(ctx, "Saving account resource to db")
	defer span.End()

	if resource.ResourceID == "" {
		resource.ResourceID = model.GenerateUUIDWithSuffix("res")
	}
	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO obrs.account_resources (resource_id, account_id, resource_type, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, resource.ResourceID, resource.AccountID, resource.ResourceType, []byte(resource.Payload), resource.CreatedAt, resource.UpdatedAt)
	if err != nil {
		span.RecordError(err)
		return storageError("Failed to create account resource", err)
	}
	return nil
}

func (d Datasource) FindByAccountID(ctx context.Context, accountID string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error) {
	ctx, span := otel.Tracer("account resources").Start(ctx, "Fetching account resources by account id")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT resource_id, account_id, resource_type, payload, created_at, updated_at, COUNT(*) OVER() AS total
		FROM obrs.account_resources
		WHERE account_id = $1 AND resource_type = $2
		ORDER BY created_at ASC, id ASC
		LIMIT $3 OFFSET $4
	`, accountID, resourceType, limit, offset)
	if err != nil {
		span.RecordError(err)
		return nil, 0, storageError("Failed to retrieve account resources", err)
	}
	defer rows.Close()

	resources, total, err := scanResources(rows)
	if err != nil || len(resources) > 0 || offset == 0 {
		return resources, total, err
	}
	total, err = d.countResources(ctx, `
		SELECT COUNT(*) FROM obrs.account_resources WHERE account_id = $1 AND resource_type = $2
	`, accountID, resourceType)
	return resources, total, err
}

func (d Datasource) FindByAccountIDIn(ctx context.Context, accountIDs []string, resourceType model.ResourceType, limit, offset int) ([]model.StoredResource, int, error) {
	ctx, span := otel.Tracer("account resources").Start(ctx, "Fetching account resources by account ids")
	defer span.End()

	if len(accountIDs) == 0 {
		return []model.StoredResource{}, 0, nil
	}

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT resource_id, account_id, resource_type, payload, created_at, updated_at, COUNT(*) OVER() AS total
		FROM obrs.account_resources
		WHERE account_id = ANY($1) AND resource_type = $2
		ORDER BY created_at ASC, id ASC
		LIMIT $3 OFFSET $4
	`, pq.Array(accountIDs), resourceType, limit, offset)
	if err != nil {
		span.RecordError(err)
		return nil, 0, storageError("Failed to retrieve account resources", err)
	}
	defer rows.Close()

	resources, total, err := scanResources(rows)
	if err != nil || len(resources) > 0 || offset == 0 {
		return resources, total, err
	}
	total, err = d.countResources(ctx, `
		SELECT COUNT(*) FROM obrs.account_resources WHERE account_id = ANY($1) AND resource_type = $2
	`, pq.Array(accountIDs), resourceType)
	return resources, total, err
}

// countResources is used when a page lies past the last row, where the windowed count in the
// page query has no row to ride on.
func (d Datasource) countResources(ctx context.Context, query string, args ...interface{}) (int, error) {
	var total int
	if err := d.Conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, storageError("Failed to count account resources", err)
	}
	return total, nil
}

func scanResources(rows *sql.Rows) ([]model.StoredResource, int, error) {
	resources := []model.StoredResource{}
	total := 0
	for rows.Next() {
		var r model.StoredResource
		var payload []byte
		err := rows.Scan(&r.ResourceID, &r.AccountID, &r.ResourceType, &payload, &r.CreatedAt, &r.UpdatedAt, &total)
		if err != nil {
			return nil, 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account resource", err)
		}
		r.Payload = payload
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("Error occurred while iterating over account resources", err)
	}
	return resources, total, nil
}
