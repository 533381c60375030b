// Package docs holds the swagger spec served at /swagger-doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/notes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List the current user's notes",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "pageNumber", "in": "query"},
                    {"type": "integer", "description": "Page size (default 10)", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PagedNotesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note",
                "parameters": [
                    {"description": "Note body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.NoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        },
        "/api/notes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Get a note by id",
                "parameters": [
                    {"type": "string", "description": "Note id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NoteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"type": "string", "description": "Note id", "name": "id", "in": "path", "required": true},
                    {"description": "New title and content", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [
                    {"type": "string", "description": "Note id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateNoteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.NoteResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "createdUtc": {"type": "string"},
                "id": {"type": "string"},
                "modifiedUtc": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.PagedNotesResponse": {
            "type": "object",
            "properties": {
                "hasNextPage": {"type": "boolean"},
                "hasPreviousPage": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.NoteResponse"}},
                "pageNumber": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "dto.Problem": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CloudScribe Notes API",
	Description:      "Per-user notes CRUD behind OIDC bearer auth.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
