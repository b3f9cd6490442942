// Package docs holds the OpenAPI specification served at /swagger/.
// The spec is maintained by hand alongside the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "API Support"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT token. Use the form \"Bearer {token}\"."
        }
    },
    "paths": {
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Issue an access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}],
                "responses": {
                    "201": {"description": "Account created"},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Email already exists"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Current account profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Profile"},
                    "401": {"description": "Authentication required"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Change password",
                "consumes": ["application/json"],
                "responses": {
                    "204": {"description": "Password changed"},
                    "400": {"description": "New password rejected"},
                    "401": {"description": "Current password invalid"}
                }
            }
        },
        "/contents": {
            "get": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "List content items",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "platform", "in": "query", "type": "string", "enum": ["social", "email", "blog"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["draft", "scheduled", "posted"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "to", "in": "query", "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "Paginated items"},
                    "400": {"description": "Invalid filter"}
                }
            },
            "post": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Create a content item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "content", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContentItem"}}],
                "responses": {
                    "201": {"description": "Created item", "schema": {"$ref": "#/definitions/ContentItem"}},
                    "400": {"description": "Validation failed"},
                    "403": {"description": "Plan quota exceeded"}
                }
            }
        },
        "/contents/{id}": {
            "get": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Get a content item",
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Item", "schema": {"$ref": "#/definitions/ContentItem"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Update a content item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Updated item", "schema": {"$ref": "#/definitions/ContentItem"}},
                    "400": {"description": "Validation failed"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete a content item",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/contents/calendar": {
            "get": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Calendar view",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date-time"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "Per-day buckets including empty days"},
                    "400": {"description": "Invalid range"}
                }
            }
        },
        "/contents/bulk": {
            "post": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Bulk create content items",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Per-item results"},
                    "400": {"description": "Validation failed"},
                    "403": {"description": "Plan quota exceeded"}
                }
            }
        },
        "/contents/bulk/reschedule": {
            "post": {
                "tags": ["contents"],
                "security": [{"BearerAuth": []}],
                "summary": "Bulk reschedule content items",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Rescheduled items"},
                    "400": {"description": "Validation failed"},
                    "404": {"description": "Unknown item ID"}
                }
            }
        },
        "/analytics/summary": {
            "get": {
                "tags": ["analytics"],
                "security": [{"BearerAuth": []}],
                "summary": "Scheduling analytics summary",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Totals, per-platform and per-status counts, upcoming week"}
                }
            }
        },
        "/billing/plans": {
            "get": {
                "tags": ["billing"],
                "security": [{"BearerAuth": []}],
                "summary": "Plan catalog",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Available plans, cheapest first"}}
            }
        },
        "/billing/subscription": {
            "get": {
                "tags": ["billing"],
                "security": [{"BearerAuth": []}],
                "summary": "Current subscription",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Current plan"}}
            },
            "post": {
                "tags": ["billing"],
                "security": [{"BearerAuth": []}],
                "summary": "Switch plan",
                "consumes": ["application/json"],
                "responses": {
                    "200": {"description": "New subscription"},
                    "400": {"description": "Unknown plan"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Healthy"},
                    "503": {"description": "Unhealthy"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ContentItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "platform": {"type": "string", "enum": ["social", "email", "blog"]},
                "status": {"type": "string", "enum": ["draft", "scheduled", "posted"]},
                "scheduled_at": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Content Calendar API",
	Description:      "REST API for scheduling content across social, email and blog channels: calendar views, bulk scheduling, analytics and plan management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
