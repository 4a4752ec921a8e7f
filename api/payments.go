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
	"net/http"

	model2 "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/api/model"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/internal/apierror"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"

	rs "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009"
	"github.com/gin-gonic/gin"
)

func paymentType(c *gin.Context) (model.PaymentType, bool) {
	pt, ok := model.ParsePaymentType(c.Param("paymentType"))
	if !ok {
		respondError(c, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Unknown payment type '%s'", c.Param("paymentType")), nil))
	}
	return pt, ok
}

// SubmitPayment answers 201 for new submissions and for idempotent replays alike.
func (a Api) SubmitPayment(c *gin.Context) {
	v, ok := a.version(c)
	if !ok {
		return
	}
	pt, ok := paymentType(c)
	if !ok {
		return
	}
	client, ok := clientID(c)
	if !ok {
		return
	}

	var newPayment model2.PaymentRequest
	if err := c.ShouldBindJSON(&newPayment); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := newPayment.ValidatePaymentRequest(); err != nil {
		respondError(c, bindError(err))
		return
	}

	consentID := c.GetHeader(ConsentIDHeader)
	if consentID == "" {
		consentID = newPayment.Data.ConsentId
	}
	if consentID != newPayment.Data.ConsentId {
		respondError(c, apierror.NewValidationError([]apierror.FieldError{{
			ErrorCode: apierror.OBResourceConsentMismatch,
			Message:   "Data.ConsentId does not match the consent of the request",
			Path:      "Data.ConsentId",
		}}))
		return
	}

	submission, _, err := a.server.SubmitPayment(c.Request.Context(), rs.PaymentRequest{
		Version:        v,
		PaymentType:    pt,
		ConsentID:      consentID,
		ClientID:       client,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
		Instruction:    newPayment.Data.Initiation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model2.Response{
		Data:  model2.PaymentData(submission, v.StatusCode(submission.Status)),
		Links: model2.Links{Self: selfLink(c) + "/" + submission.PaymentID},
	})
}

func (a Api) GetPayment(c *gin.Context) {
	v, ok := a.version(c)
	if !ok {
		return
	}
	pt, ok := paymentType(c)
	if !ok {
		return
	}
	client, ok := clientID(c)
	if !ok {
		return
	}

	submission, err := a.server.GetPayment(c.Request.Context(), c.Param("paymentId"), client)
	if err != nil {
		respondError(c, err)
		return
	}
	if submission.PaymentType != pt {
		respondError(c, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Payment with ID '%s' not found", submission.PaymentID), nil))
		return
	}

	c.JSON(http.StatusOK, model2.Response{
		Data:  model2.PaymentData(submission, v.StatusCode(submission.Status)),
		Links: model2.Links{Self: selfLink(c)},
	})
}
