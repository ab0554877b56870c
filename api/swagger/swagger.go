package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIFMS Portal",
        "description": "Student Issue & Feedback Management portal: JSON endpoints behind the dashboards",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Complaints", "description": "Complaint lists for the logged-in user"}
    ],
    "paths": {
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
                "summary": "Readiness check with a metrics snapshot",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/complaints/mine": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List my complaints",
                "description": "Complaints filed by the logged-in user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ComplaintListEnvelope"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected by the SIFMS API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "SIFMS API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/complaints/all": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List all complaints",
                "description": "Every complaint visible to the logged-in DOI",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ComplaintListEnvelope"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected by the SIFMS API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "SIFMS API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/complaints/pending": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List pending complaints",
                "description": "Complaints the logged-in DOI has not answered yet",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ComplaintListEnvelope"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Rejected by the SIFMS API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "SIFMS API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Response": {
            "type": "object",
            "properties": {
                "doi_reg_no": {"type": "string"},
                "doi_name": {"type": "string"},
                "response_message": {"type": "string"},
                "response_time": {"type": "string"}
            }
        },
        "Complaint": {
            "type": "object",
            "properties": {
                "complaint_id": {"type": "string"},
                "student_reg_no": {"type": "string"},
                "student_name": {"type": "string"},
                "complaint": {"type": "string"},
                "timestamp": {"type": "string"},
                "responses": {"type": "array", "items": {"$ref": "#/definitions/Response"}}
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
        "ComplaintListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Complaint"}},
                "meta": {"type": "object", "properties": {"count": {"type": "integer"}}}
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
