// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

// Package docs holds the OpenAPI 2.0 document served at /swagger/doc.json.
// It follows the layout swag init emits; keep it in step with the @Router
// annotations in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/cratedigger/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns the service banner",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Welcome message",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.welcome"}}
                }
            }
        },
        "/api/v1/genres": {
            "get": {
                "description": "Lists the genres accepted by the genres filter of /albums/random",
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "List genres",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/albums/random": {
            "get": {
                "description": "Samples obscure albums across genres and search terms. Every album carries a 30 second preview.",
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "Random crate dig",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Number of albums", "name": "count", "in": "query"},
                    {"type": "string", "description": "Comma separated Deezer genre IDs", "name": "genres", "in": "query"},
                    {"type": "integer", "description": "Minimum track count", "name": "min_tracks", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/albums/chart": {
            "get": {
                "description": "Returns albums from the Deezer chart that have a preview",
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "Chart albums",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Number of albums", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/albums/search": {
            "get": {
                "description": "Searches Deezer albums and keeps those with a preview",
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "Search albums",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "default": 20, "description": "Number of albums", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/albums/{id}": {
            "get": {
                "description": "Returns one album with its preview",
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "Get album",
                "parameters": [
                    {"type": "integer", "description": "Deezer album ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "description": "Rolling latency percentiles per route",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Latency stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/health/live": {
            "get": {
                "description": "Reports that the process is alive",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/health/ready": {
            "get": {
                "description": "Reports 503 while the Deezer circuit breaker is open",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.welcome": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "version": {"type": "string"},
                "data_source": {"type": "string"}
            }
        },
        "models.Album": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "artist": {"type": "string"},
                "cover_url": {"type": "string"},
                "preview_url": {"type": "string"},
                "year": {"type": "string"},
                "genre": {"type": "string"},
                "deezer_id": {"type": "integer"},
                "deezer_link": {"type": "string"},
                "nb_tracks": {"type": "integer"}
            }
        },
        "models.AlbumCollection": {
            "type": "object",
            "properties": {
                "albums": {"type": "array", "items": {"$ref": "#/definitions/models.Album"}},
                "total": {"type": "integer"}
            }
        },
        "models.Genre": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "models.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "upstream_state": {"type": "string"},
                "uptime_seconds": {"type": "number"}
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "query_time_ms": {"type": "integer"},
                "request_id": {"type": "string"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "2.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Cratedigger API",
	Description:      "Crate digging album discovery over the public Deezer catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
