// Package http implements HTTP request handlers for the PVPulse API.
// It provides a thin layer between HTTP transport and business logic:
// handlers parse query parameters, delegate to the service layer, and
// format responses with chi/render.
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → DataService → Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "data_unavailable",
//	    "title": "Data unavailable",
//	    "status": 503,
//	    "detail": "price dataset could not be loaded",
//	    "instance": "/api/data/series"
//	}
//
// Service errors are translated by the shared errors.ErrorHandler, so
// handlers never construct HTTP error bodies themselves.
package http
