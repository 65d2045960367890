package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/layouts/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/octet-stream"],
                "produces": ["application/json", "application/yaml"],
                "tags": ["layouts"],
                "summary": "Decode a binary layout",
                "parameters": [
                    {"type": "string", "description": "Tree format (json or yaml)", "name": "format", "in": "query"},
                    {"description": "Layout file", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/layouts/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json", "application/yaml"],
                "produces": ["application/octet-stream"],
                "tags": ["layouts"],
                "summary": "Encode a layout tree at the latest version",
                "parameters": [
                    {"type": "string", "description": "Tree format (json, jsonc or yaml)", "name": "format", "in": "query"},
                    {"description": "Layout tree", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Layout file", "schema": {"type": "string", "format": "binary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/slots/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/octet-stream"],
                "produces": ["application/json", "application/yaml"],
                "tags": ["slots"],
                "summary": "Decode a save slot",
                "parameters": [
                    {"type": "string", "description": "Tree format (json or yaml)", "name": "format", "in": "query"},
                    {"description": "Slot file", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "List archived files",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Archive a layout or slot file",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "name", "in": "query"},
                    {"type": "string", "description": "layout or slot", "name": "kind", "in": "query"},
                    {"description": "File contents", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Get an archive record",
                "parameters": [{"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Delete an archive entry",
                "parameters": [{"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive/{id}/raw": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["archive"],
                "summary": "Download the original file",
                "parameters": [{"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "File contents", "schema": {"type": "string", "format": "binary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:9300",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PolyParser REST API",
	Description:      "Converts PolyBridge layout and save-slot files and keeps an archive of uploaded layouts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
