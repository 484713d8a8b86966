// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /proposals", middleware.WithLogging(handler))

Logs request start and completion with a request id. The id is taken from
X-Request-ID when the client sends one, otherwise a new UUID, and is echoed
in the response header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Error Mapping

WriteError turns core errors into responses:

	*assembly.ValidationError   → 400
	*assembly.NotFoundError     → 404
	*assembly.DuplicateVoteError → 409
	auth.ErrInvalidCredential, auth.ErrInvalidToken → 401
	anything else               → 500 (logged, details withheld)
*/
package middleware
