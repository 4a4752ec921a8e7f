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

package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/api/middleware"
	model2 "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/api/model"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/consentstore"

	rs "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009"
	"github.com/gin-gonic/gin"
)

const (
	ConsentIDHeader      = "x-intent-id"
	IdempotencyKeyHeader = "x-idempotency-key"
)

// respondError writes err as an Open Banking error body with the status it maps to.
func respondError(c *gin.Context, err error) {
	c.JSON(apierror.MapErrorToHTTPStatus(err), apierror.ToResponse(err, c.GetString(middleware.InteractionIDKey)))
}

func bindError(err error) error {
	return apierror.NewValidationError([]apierror.FieldError{{ErrorCode: apierror.OBFieldInvalid, Message: err.Error()}})
}

func headerMissing(header string) error {
	return apierror.NewValidationError([]apierror.FieldError{{
		ErrorCode: apierror.OBHeaderMissing,
		Message:   fmt.Sprintf("%s header is required", header),
		Path:      header,
	}})
}

func (a Api) version(c *gin.Context) (rs.VersionConfig, bool) {
	v, err := rs.LookupVersion(c.Param("version"))
	if err != nil {
		respondError(c, err)
		return rs.VersionConfig{}, false
	}
	return v, true
}

func clientID(c *gin.Context) (string, bool) {
	id := c.GetHeader(consentstore.ClientIDHeader)
	if id == "" {
		respondError(c, headerMissing(consentstore.ClientIDHeader))
		return "", false
	}
	return id, true
}

func pageParam(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, apierror.NewValidationError([]apierror.FieldError{{
			ErrorCode: apierror.OBFieldInvalid,
			Message:   "page must be a positive integer",
			Path:      "page",
		}})
	}
	return page, nil
}

func absoluteURL(c *gin.Context, u *url.URL) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, u.RequestURI())
}

func selfLink(c *gin.Context) string {
	return absoluteURL(c, c.Request.URL)
}

func pageLink(c *gin.Context, page int) string {
	u := *c.Request.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return absoluteURL(c, &u)
}

// pageLinks builds the Links section of a paged read.
func pageLinks(c *gin.Context, page, totalPages int) model2.Links {
	links := model2.Links{Self: selfLink(c)}
	if totalPages <= 1 {
		return links
	}
	links.First = pageLink(c, 1)
	links.Last = pageLink(c, totalPages)
	if page > 1 {
		links.Prev = pageLink(c, page-1)
	}
	if page < totalPages {
		links.Next = pageLink(c, page+1)
	}
	return links
}
