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
	"net/http"

	model2 "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/api/model"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"

	rs "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009"
	"github.com/gin-gonic/gin"
)

// GetAccountResources serves both the per account and the bulk read of resource type rt. The
// bulk route has no accountId parameter.
func (a Api) GetAccountResources(rt model.ResourceType) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := a.version(c)
		if !ok {
			return
		}
		client, ok := clientID(c)
		if !ok {
			return
		}
		page, err := pageParam(c)
		if err != nil {
			respondError(c, err)
			return
		}

		resp, err := a.server.ReadAccountResources(c.Request.Context(), v, rt, rs.AccountResourceQuery{
			ConsentID: c.GetHeader(ConsentIDHeader),
			ClientID:  client,
			AccountID: c.Param("accountId"),
			Page:      page,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, model2.Response{
			Data:  model2.ResourceData(rt, resp.Items),
			Links: pageLinks(c, resp.Page, resp.TotalPages),
			Meta:  model2.Meta{TotalPages: resp.TotalPages},
		})
	}
}

func (a Api) CreateAccountResource(c *gin.Context) {
	rt, ok := model.ParseResourceType(c.Param("resourceType"))
	if !ok {
		respondError(c, apierror.NewAPIError(apierror.ErrNotFound, "Unknown resource type '"+c.Param("resourceType")+"'", nil))
		return
	}

	var newResource model2.AccountResource
	if err := c.ShouldBindJSON(&newResource); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := newResource.ValidateAccountResource(); err != nil {
		respondError(c, bindError(err))
		return
	}

	resp, err := a.server.CreateAccountResource(c.Request.Context(), c.Param("accountId"), rt, newResource.Payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
