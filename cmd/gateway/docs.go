package main

// @title MultiSafepay Gateway API
// @version 1.0
// @description Payment gateway service integrating shop checkout with MultiSafepay (transactions, webhooks, refunds)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/storekit/multisafepay-gateway
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/storekit/multisafepay-gateway/blob/main/LICENSE

// @host localhost:8084
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Checkout
// @tag.description Shopper-facing checkout endpoints

// @tag.name Payments
// @tag.description Provider callbacks and payment records

// @tag.name Health
// @tag.description Health check endpoints
