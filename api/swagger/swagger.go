package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shift Solver API",
        "description": "Constraint-based employee shift scheduling",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Schedule generation and export"}
    ],
    "paths": {
        "/": {
            "get": {
                "summary": "Running status",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedule": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate an optimized shift schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Solved schedule",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "400": {
                        "description": "Invalid configuration",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/api/v1/schedule/export": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate a schedule and download it as CSV or PDF",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "format",
                        "type": "string",
                        "enum": ["csv", "pdf"],
                        "default": "csv"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Schedule file"},
                    "400": {
                        "description": "Invalid configuration",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/api/v1/test": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Echo a request body back",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Echoed body"}
                }
            }
        }
    },
    "definitions": {
        "GenerateScheduleRequest": {
            "type": "object",
            "required": ["employees", "shiftTypes", "schedulingPeriod", "constraints"],
            "properties": {
                "employees": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Employee"}
                },
                "shiftTypes": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ShiftType"}
                },
                "schedulingPeriod": {"$ref": "#/definitions/SchedulingPeriod"},
                "constraints": {"$ref": "#/definitions/Constraints"},
                "preferences": {"$ref": "#/definitions/Preferences"}
            }
        },
        "Employee": {
            "type": "object",
            "required": ["id", "name", "role", "maxHoursPerWeek"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "maxHoursPerWeek": {"type": "integer"},
                "availability": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AvailabilityWindow"}
                },
                "preferences": {"type": "array", "items": {"type": "string"}},
                "email": {"type": "string"}
            }
        },
        "AvailabilityWindow": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "integer", "description": "Monday=0 through Sunday=6"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "17:00"}
            }
        },
        "ShiftType": {
            "type": "object",
            "required": ["id", "name", "startTime", "endTime", "duration"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "17:00"},
                "requiredRoles": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RoleRequirement"}
                },
                "duration": {"type": "number", "description": "Hours"},
                "isRepeating": {"type": "boolean"},
                "repeatPattern": {"type": "string", "enum": ["daily", "weekly", "custom"]},
                "priority": {"type": "integer"}
            }
        },
        "RoleRequirement": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "SchedulingPeriod": {
            "type": "object",
            "required": ["startDate", "endDate"],
            "properties": {
                "startDate": {"type": "string", "example": "2024-06-03"},
                "endDate": {"type": "string", "example": "2024-06-09"},
                "daysOff": {"type": "array", "items": {"type": "string"}},
                "holidays": {"type": "array", "items": {"type": "string"}},
                "minRestTimeBetweenShifts": {"type": "integer"},
                "weekendRules": {"$ref": "#/definitions/WeekendRules"}
            }
        },
        "WeekendRules": {
            "type": "object",
            "properties": {
                "rotateWeekends": {"type": "boolean"},
                "avoidBackToBack": {"type": "boolean"},
                "maxWeekendsPerMonth": {"type": "integer"}
            }
        },
        "Constraints": {
            "type": "object",
            "required": ["maxHoursPerEmployee"],
            "properties": {
                "maxHoursPerEmployee": {"type": "integer"},
                "maxShiftsPerDay": {"type": "integer"},
                "maxNightShiftsPerWeek": {"type": "integer"},
                "minHoursBetweenShifts": {"type": "integer"},
                "preferFixedTeams": {"type": "boolean"},
                "prioritizeFairness": {"type": "number", "minimum": 0, "maximum": 1}
            }
        },
        "Preferences": {
            "type": "object",
            "properties": {
                "respectEmployeePreferences": {"type": "boolean"},
                "minimizeNightShifts": {"type": "boolean"},
                "spreadWeekendShiftsFairly": {"type": "boolean"},
                "minimizeConsecutiveNightShifts": {"type": "boolean"},
                "preferenceWeight": {"type": "number"}
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
