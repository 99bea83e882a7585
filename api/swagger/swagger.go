package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Ward Roster API",
        "description": "Monthly shift-schedule generation for hospital departments",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Doctors", "description": "Doctor registry and qualifications"},
        {"name": "Services", "description": "Shift-generating department services"},
        {"name": "Unavailability", "description": "Per-doctor unavailability records"},
        {"name": "Roster", "description": "Roster generation, publication and reporting"},
        {"name": "Operations", "description": "Runtime health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Dependencies unavailable"}
                }
            }
        },
        "/api/v1/metrics/snapshot": {
            "get": {
                "tags": ["Operations"],
                "summary": "Aggregated runtime metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/doctors": {
            "get": {
                "tags": ["Doctors"],
                "summary": "List doctors",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Doctors"],
                "summary": "Create doctor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDoctorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/doctors/{id}": {
            "get": {
                "tags": ["Doctors"],
                "summary": "Get doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Doctors"],
                "summary": "Update doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDoctorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Doctors"],
                "summary": "Delete doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/doctors/{id}/services": {
            "put": {
                "tags": ["Doctors"],
                "summary": "Replace doctor qualifications and preferences",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetDoctorServicesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/services": {
            "get": {
                "tags": ["Services"],
                "summary": "List services",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "time_slot", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Services"],
                "summary": "Create service",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateServiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/services/{id}": {
            "get": {
                "tags": ["Services"],
                "summary": "Get service",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Services"],
                "summary": "Update service",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateServiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Services"],
                "summary": "Delete service",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/unavailability": {
            "get": {
                "tags": ["Unavailability"],
                "summary": "List unavailability records",
                "parameters": [
                    {"name": "doctor_id", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Unavailability"],
                "summary": "Mark a doctor unavailable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUnavailabilityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/unavailability/{id}": {
            "delete": {
                "tags": ["Unavailability"],
                "summary": "Remove an unavailability record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/schedules": {
            "get": {
                "tags": ["Roster"],
                "summary": "List the committed assignments of a month",
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"},
                    {"name": "doctor_id", "in": "query", "type": "string"},
                    {"name": "service_id", "in": "query", "type": "string"},
                    {"name": "time_slot", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roster/generate": {
            "post": {
                "tags": ["Roster"],
                "summary": "Generate a roster proposal for one month",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roster/publish": {
            "post": {
                "tags": ["Roster"],
                "summary": "Publish a held proposal as the month's roster",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PublishRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Proposal has coverage gaps and force was not set"}
                }
            }
        },
        "/api/v1/roster/proposals/{id}": {
            "get": {
                "tags": ["Roster"],
                "summary": "Fetch a held roster proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        },
        "/api/v1/roster/runs": {
            "post": {
                "tags": ["Roster"],
                "summary": "Queue an asynchronous roster generation run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateRosterRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roster/runs/{id}": {
            "get": {
                "tags": ["Roster"],
                "summary": "Fetch the state of an asynchronous run",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roster/summary": {
            "get": {
                "tags": ["Roster"],
                "summary": "Per-doctor breakdown of the committed month",
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/roster/export": {
            "get": {
                "tags": ["Roster"],
                "summary": "Export the committed month as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "year", "in": "query", "required": true, "type": "integer"},
                    {"name": "month", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        }
    },
    "definitions": {
        "Doctor": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "weekly_hours": {"type": "integer"},
                "is_specialist": {"type": "boolean"},
                "qualified_service_ids": {"type": "array", "items": {"type": "string"}},
                "preferred_service_ids": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "Service": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "time_slot": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "doctors_required": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "Unavailability": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "doctor_id": {"type": "string"},
                "date": {"type": "string"},
                "time_slot": {"type": "string"},
                "reason": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "doctor_id": {"type": "string"},
                "service_id": {"type": "string"},
                "date": {"type": "string"},
                "time_slot": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "CreateDoctorRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "weekly_hours": {"type": "integer"},
                "is_specialist": {"type": "boolean"}
            },
            "required": ["name", "surname", "weekly_hours"]
        },
        "UpdateDoctorRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "weekly_hours": {"type": "integer"},
                "is_specialist": {"type": "boolean"}
            },
            "required": ["name", "surname", "weekly_hours"]
        },
        "SetDoctorServicesRequest": {
            "type": "object",
            "properties": {
                "qualified_service_ids": {"type": "array", "items": {"type": "string"}},
                "preferred_service_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["qualified_service_ids"]
        },
        "CreateServiceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "time_slot": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "doctors_required": {"type": "integer"}
            },
            "required": ["name", "time_slot", "days", "doctors_required"]
        },
        "UpdateServiceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "time_slot": {"type": "string"},
                "days": {"type": "array", "items": {"type": "string"}},
                "doctors_required": {"type": "integer"}
            },
            "required": ["name", "time_slot", "days", "doctors_required"]
        },
        "CreateUnavailabilityRequest": {
            "type": "object",
            "properties": {
                "doctor_id": {"type": "string"},
                "date": {"type": "string"},
                "time_slot": {"type": "string"},
                "reason": {"type": "string"}
            },
            "required": ["doctor_id", "date", "time_slot"]
        },
        "GenerateRosterRequest": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "departmentOrder": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["year", "month"]
        },
        "PublishRosterRequest": {
            "type": "object",
            "properties": {
                "proposalId": {"type": "string"},
                "force": {"type": "boolean"}
            },
            "required": ["proposalId"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
