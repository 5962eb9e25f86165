// Package docs holds the OpenAPI description of the console's JSON routes,
// in the layout `swag init -g cmd/console/main.go` writes.
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
        "/health": {
            "get": {
                "description": "Always answers while the process is up.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "probes"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/live": {
            "get": {
                "tags": [
                    "probes"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Pings redis when sessions are stored there.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "probes"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "503": {
                        "description": "Redis unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/state": {
            "get": {
                "description": "Returns the list view state bound to the session cookie, loading page 0 for a new session.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "console"
                ],
                "summary": "Console state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.View"
                        }
                    },
                    "500": {
                        "description": "Session could not be loaded",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.ListQuery": {
            "type": "object",
            "properties": {
                "activeOnly": {
                    "type": "boolean"
                },
                "page": {
                    "type": "integer"
                },
                "q": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "sort": {
                    "type": "string"
                }
            }
        },
        "models.PageMeta": {
            "type": "object",
            "properties": {
                "hasNext": {
                    "type": "boolean"
                },
                "hasPrevious": {
                    "type": "boolean"
                },
                "page": {
                    "type": "integer",
                    "example": 0
                },
                "size": {
                    "type": "integer",
                    "example": 10
                },
                "totalElements": {
                    "type": "integer",
                    "example": 25
                },
                "totalPages": {
                    "type": "integer"
                }
            }
        },
        "models.User": {
            "description": "User record",
            "type": "object",
            "properties": {
                "active": {
                    "type": "boolean",
                    "example": true
                },
                "createdAt": {
                    "type": "string",
                    "example": "2024-03-15T14:30:00Z"
                },
                "email": {
                    "type": "string",
                    "example": "ada@example.org"
                },
                "firstName": {
                    "type": "string",
                    "example": "Ada"
                },
                "id": {
                    "type": "string",
                    "example": "4f7c1d2e-8a9b-4c3d-9e1f-2a3b4c5d6e7f"
                },
                "lastName": {
                    "type": "string",
                    "example": "Lovelace"
                },
                "updatedAt": {
                    "type": "string",
                    "example": "2024-03-15T14:30:00Z"
                }
            }
        },
        "models.UserStats": {
            "type": "object",
            "properties": {
                "createdLast24h": {
                    "type": "integer",
                    "example": 3
                }
            }
        },
        "service.Confirmation": {
            "type": "object",
            "properties": {
                "open": {
                    "type": "boolean"
                },
                "soft": {
                    "type": "boolean"
                },
                "user": {
                    "$ref": "#/definitions/models.User"
                }
            }
        },
        "service.CreateForm": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                }
            }
        },
        "service.Notification": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "tone": {
                    "type": "string",
                    "enum": [
                        "green",
                        "red"
                    ]
                }
            }
        },
        "service.View": {
            "type": "object",
            "properties": {
                "canNext": {
                    "type": "boolean"
                },
                "canPrev": {
                    "type": "boolean"
                },
                "confirm": {
                    "$ref": "#/definitions/service.Confirmation"
                },
                "creating": {
                    "type": "boolean"
                },
                "form": {
                    "$ref": "#/definitions/service.CreateForm"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.User"
                    }
                },
                "listError": {
                    "type": "string"
                },
                "loading": {
                    "type": "boolean"
                },
                "meta": {
                    "$ref": "#/definitions/models.PageMeta"
                },
                "query": {
                    "$ref": "#/definitions/models.ListQuery"
                },
                "stats": {
                    "$ref": "#/definitions/models.UserStats"
                },
                "toast": {
                    "$ref": "#/definitions/service.Notification"
                },
                "totalPages": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "User Admin Console",
	Description:      "Server-rendered admin console for the user API. JSON routes expose the session's list state and the service probes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
