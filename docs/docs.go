// Package docs registers the API description served at /swagger.
package docs

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
        "/{type}": {
            "get": {
                "tags": ["records"],
                "summary": "List records",
                "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/EntityType"}
                ],
                "responses": {
                    "200": {"description": "JSON array of records"},
                    "404": {"description": "Invalid data type", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["records"],
                "summary": "Create a record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/EntityType"},
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Item added", "schema": {"$ref": "#/definitions/ItemResponse"}},
                    "400": {"description": "Invalid item data", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Invalid data type", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Failed to save data", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/{type}/{id}": {
            "put": {
                "tags": ["records"],
                "summary": "Shallow-merge fields into a record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/EntityType"},
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Item updated", "schema": {"$ref": "#/definitions/ItemResponse"}},
                    "404": {"description": "Item not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["records"],
                "summary": "Delete a record",
                "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/EntityType"},
                    {"in": "path", "name": "id", "required": true, "type": "string"}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Item deleted", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "404": {"description": "Item not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/upload/{type}": {
            "post": {
                "tags": ["uploads"],
                "summary": "Upload an image",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "type", "required": true, "type": "string"},
                    {"in": "formData", "name": "image", "required": true, "type": "file"}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Image stored", "schema": {"$ref": "#/definitions/UploadResponse"}},
                    "400": {"description": "No file uploaded", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Get site settings",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Settings", "schema": {"$ref": "#/definitions/Settings"}}
                }
            },
            "put": {
                "tags": ["settings"],
                "summary": "Update site settings",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/Settings"}}
                ],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Settings", "schema": {"$ref": "#/definitions/Settings"}},
                    "400": {"description": "Invalid item data", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {"type": "string", "example": "media@uni.edu"},
                                "password": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Access token"},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "parameters": {
        "EntityType": {
            "in": "path",
            "name": "type",
            "required": true,
            "type": "string",
            "enum": ["work", "skills", "contact", "social_links"]
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "ItemResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "item": {"type": "object"},
                "message": {"type": "string"}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "UploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "path": {"type": "string", "example": "/images/work/poster-1700000000000-123456789.jpg"},
                "filename": {"type": "string"}
            }
        },
        "Settings": {
            "type": "object",
            "properties": {
                "phone": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the token from /auth/login"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Agency Site API",
	Description:      "Content API for the media agency site: portfolio, services, social links and contact messages",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
