// Package docs holds the OpenAPI description served under /swagger.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness message",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Database connectivity check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/upload_and_analyze": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Extract and clean the text of an image or PDF",
                "parameters": [
                    {"type": "file", "description": "image or PDF", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UploadResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/analyze": {
            "post": {
                "description": "Generation failures are reported with status 200 and source \"Error Handler\".",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Run a command over optional context text",
                "parameters": [
                    {"description": "all fields optional", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/model.AnalyzeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AnalyzeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/notes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List the caller's notes, newest first",
                "parameters": [
                    {"type": "integer", "description": "only notes of this notebook", "name": "notebook_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Note"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note owned by the caller",
                "parameters": [
                    {"description": "note", "name": "note", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.NoteInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Note"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/notes/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Update title and content of a note; notebook changes only when notebook_id is sent",
                "parameters": [
                    {"type": "integer", "description": "note id", "name": "id", "in": "path", "required": true},
                    {"description": "note", "name": "note", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.NoteInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Note"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [
                    {"type": "integer", "description": "note id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/notebooks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notebooks"],
                "summary": "List the caller's notebooks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Notebook"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notebooks"],
                "summary": "Create a notebook",
                "parameters": [
                    {"description": "notebook", "name": "notebook", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.notebookInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Notebook"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/notebooks/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notebooks"],
                "summary": "Rename a notebook",
                "parameters": [
                    {"type": "integer", "description": "notebook id", "name": "id", "in": "path", "required": true},
                    {"description": "notebook", "name": "notebook", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.notebookInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Notebook"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notebooks"],
                "summary": "Delete a notebook and all of its notes",
                "parameters": [
                    {"type": "integer", "description": "notebook id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "handler.notebookInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "model.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "command": {"type": "string", "enum": ["QUERY_FACTUAL", "SUMMARIZE", "TRANSLATE", "REWRITE", "PROOFREAD"]},
                "output_language": {"type": "string"},
                "question": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "model.AnalyzeResponse": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "citation": {"type": "string"},
                "command": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "model.Note": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "notebook_id": {"type": "integer"},
                "title": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "model.NoteInput": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "notebook_id": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "model.Notebook": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "model.UploadResult": {
            "type": "object",
            "properties": {
                "analysis_ready": {"type": "string"},
                "filename": {"type": "string"},
                "ocr_text": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NotePilot API",
	Description:      "Text extraction, cleanup and note storage for the NotePilot extension and web app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
