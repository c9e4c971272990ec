// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package main provides the VillaRank HTTP server.
//
// VillaRank ranks a vacation-rental catalog against a traveler's
// criteria and serves the results over a REST API.
//
// @title VillaRank API
// @version 1.0
// @description Vacation rental search and recommendation engine.
// @description
// @description ## Ranking
// @description
// @description Every search scores the full catalog across five criteria
// @description (location, budget, features, group size, environment),
// @description combines them with adaptive weights, and returns the top-k
// @description matches. `/search/detailed` additionally returns the
// @description per-criterion score breakdown for each result.
// @description
// @description ## Authentication
// @description
// @description All search and profile endpoints require a JWT bearer token.
// @description Register via `/api/v1/auth/register`, then obtain a token via
// @description `/api/v1/auth/login` and send it in the Authorization header:
// @description `Authorization: Bearer <token>`.
// @description
// @description ## Rate Limiting
// @description
// @description Default limit: 100 requests per minute per IP. Login is
// @description limited to 5 attempts per 5 minutes.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-26T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/villarank/villarank/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8480
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Obtain via /api/v1/auth/login and send as "Bearer <token>".
//
// @tag.name health
// @tag.description Liveness and readiness probes
//
// @tag.name auth
// @tag.description Account registration and login
//
// @tag.name profile
// @tag.description The authenticated account's searchable preferences
//
// @tag.name search
// @tag.description Catalog ranking endpoints
//
// @tag.name assistant
// @tag.description Natural-language recommendation via the external assistant
//
// @tag.name catalog
// @tag.description Catalog snapshot statistics
//
// @tag.name analytics
// @tag.description DuckDB-backed catalog analytics
//
// @tag.name admin
// @tag.description Administration endpoints (admin role required)
package main
