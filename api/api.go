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

	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/api/middleware"
	"github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009/model"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	rs "github.com/SecureApiGateway/secure-api-gateway-ob-uk-rs-sub009"
	"github.com/gin-gonic/gin"
)

const basePath = "/open-banking/:version"

type Api struct {
	server *rs.ResourceServer
	router *gin.Engine
}

// Router registers one handler set for every API version. The version path segment selects the
// redaction, validation and status rendering rules.
func (a Api) Router() *gin.Engine {
	router := a.router
	ob := router.Group(basePath)

	for _, rt := range model.ResourceTypes {
		ob.GET("/aisp/accounts/:accountId/"+string(rt), a.GetAccountResources(rt))
		ob.GET("/aisp/"+string(rt), a.GetAccountResources(rt))
	}

	ob.POST("/pisp/:paymentType", a.SubmitPayment)
	ob.GET("/pisp/:paymentType/:paymentId", a.GetPayment)

	ob.POST("/cbpii/funds-confirmations", a.ConfirmFunds)

	internal := router.Group("/internal", middleware.SecretKeyAuthMiddleware())
	internal.PUT("/payments/:paymentId/status", a.UpdatePaymentStatus)
	internal.POST("/payment-status-updates", a.EnqueueStatusUpdate)
	internal.POST("/accounts/:accountId/:resourceType", a.CreateAccountResource)

	return a.router
}

func NewAPI(server *rs.ResourceServer) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf := server.Config()

	r := gin.Default()
	r.Use(otelgin.Middleware(conf.ProjectName))
	r.Use(middleware.RateLimitMiddleware(conf))
	r.Use(middleware.InteractionIDMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})
	r.GET("/versions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"versions": rs.SupportedVersions()})
	})

	return &Api{server: server, router: r}
}
