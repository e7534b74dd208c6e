package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "User Directory API",
        "description": "Filter, sort and page through a directory of people loaded once from randomuser.me",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Users", "description": "Directory view and record detail"},
        {"name": "System", "description": "Liveness, readiness and source status"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "description": "Ready once the one-time record load has finished, successfully or not",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Still loading", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Prometheus exposition"}
                }
            }
        },
        "/api/v1/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "description": "Filters by search text, gender and country, sorts by name, email or age and returns one page. Out-of-range pages are clamped.",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive substring over every visible field"},
                    {"name": "gender", "in": "query", "type": "string", "enum": ["all", "male", "female"]},
                    {"name": "country", "in": "query", "type": "string", "description": "Exact country, case-insensitive"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["name", "email", "age"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserListEnvelope"}},
                    "400": {"description": "Invalid filter or sort value", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/countries": {
            "get": {
                "tags": ["Users"],
                "summary": "List countries",
                "description": "Distinct countries of the loaded collection, sorted",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/status": {
            "get": {
                "tags": ["System"],
                "summary": "Source status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {
                    "type": "object",
                    "properties": {
                        "first": {"type": "string"},
                        "last": {"type": "string"}
                    }
                },
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string"},
                "country": {"type": "string"},
                "picture_url": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "ListMeta": {
            "type": "object",
            "properties": {
                "countries": {"type": "array", "items": {"type": "string"}},
                "cache_hit": {"type": "boolean"},
                "processing_time_ms": {"type": "integer"},
                "sort": {"type": "string"},
                "order": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "UserListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Record"}},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"$ref": "#/definitions/ListMeta"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
