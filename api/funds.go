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

	"github.com/gin-gonic/gin"
)

func (a Api) ConfirmFunds(c *gin.Context) {
	v, ok := a.version(c)
	if !ok {
		return
	}
	client, ok := clientID(c)
	if !ok {
		return
	}

	var request model2.FundsConfirmationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, bindError(err))
		return
	}

	consentID := c.GetHeader(ConsentIDHeader)
	if consentID == "" {
		consentID = request.Data.ConsentID
	}

	resp, err := a.server.ConfirmFunds(c.Request.Context(), v, consentID, client, request.Data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model2.Response{
		Data:  resp,
		Links: model2.Links{Self: selfLink(c) + "/" + resp.FundsConfirmationID},
	})
}
