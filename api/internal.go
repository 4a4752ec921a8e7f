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

// UpdatePaymentStatus applies a status change synchronously. It is called by settlement
// processes, so the body carries internal status names.
func (a Api) UpdatePaymentStatus(c *gin.Context) {
	var update model2.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := update.ValidateStatusUpdate(); err != nil {
		respondError(c, bindError(err))
		return
	}

	paymentID := c.Param("paymentId")
	resp, err := a.server.UpdatePaymentStatus(c.Request.Context(), paymentID, update.ToStatusUpdate(paymentID).Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EnqueueStatusUpdate hands a status change to the workers.
func (a Api) EnqueueStatusUpdate(c *gin.Context) {
	var update model2.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := update.ValidateEnqueueStatusUpdate(); err != nil {
		respondError(c, bindError(err))
		return
	}

	if err := a.server.EnqueueStatusUpdate(c.Request.Context(), update.ToStatusUpdate("")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "payment_id": update.PaymentId})
}
