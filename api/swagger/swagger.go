package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Phlebotomy Portal", "description": "Web portal for phlebotomy appointment administration. Every page also answers with a JSON envelope when the client accepts application/json.", "version": "1.0.0"},
    "basePath": "/",
    "schemes": ["http", "https"],
    "tags": [
        {"name": "Appointments", "description": "Appointment lists, filters and row actions"},
        {"name": "Intake", "description": "Appointment and employee creation"},
        {"name": "Directory", "description": "Employees and laboratories"},
        {"name": "Billing", "description": "Transactions"},
        {"name": "Notifications", "description": "In-app notifications"},
        {"name": "Dashboard", "description": "Role landing metrics"},
        {"name": "Authentication", "description": "Sign in and out"},
        {"name": "Account", "description": "Signed-in account"},
        {"name": "Health", "description": "Health checks and metrics"}
    ],
    "paths": {
        "/health": {"get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["Health"], "summary": "Readiness check", "description": "Checks the phlebotomy API health URL.", "responses": {"200": {"description": "Ready"}, "503": {"description": "API unreachable"}}}},
        "/metrics": {"get": {"tags": ["Health"], "summary": "Prometheus metrics", "responses": {"200": {"description": "OK"}}}},
        "/signin": {"post": {"tags": ["Authentication"], "summary": "Sign in", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/signout": {"post": {"tags": ["Authentication"], "summary": "Sign out", "responses": {"204": {"description": "Signed out"}}}},
        "/account": {"get": {"tags": ["Account"], "summary": "Current account", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/account/profile": {"post": {"tags": ["Account"], "summary": "Update account settings", "produces": ["application/json", "text/html"], "consumes": ["multipart/form-data", "application/json"], "parameters": [{"name": "image", "in": "formData", "type": "file", "required": false, "description": "Profile image"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/account/notifications/toggle": {"post": {"tags": ["Account"], "summary": "Toggle notifications", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/account/status/toggle": {"post": {"tags": ["Account"], "summary": "Toggle account status", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/account/password": {"post": {"tags": ["Account"], "summary": "Change password", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/notifications": {"get": {"tags": ["Notifications"], "summary": "List notifications", "produces": ["application/json", "text/html"], "description": "Unread notifications are marked read in the background.", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/notifications/clear": {"post": {"tags": ["Notifications"], "summary": "Delete all notifications", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Admin dashboard", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Employee dashboard", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/laboratory/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Laboratory dashboard", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments": {"get": {"tags": ["Appointments"], "summary": "Appointments", "produces": ["application/json", "text/html"], "parameters": [{"name": "page", "in": "query", "type": "integer", "required": false, "description": "Page number"}, {"name": "dir", "in": "query", "type": "string", "required": false, "description": "Relative step (next|prev)"}, {"name": "refresh", "in": "query", "type": "boolean", "required": false, "description": "Reload the current page"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/{id}": {"get": {"tags": ["Appointments"], "summary": "Appointments: detail", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/filters": {"post": {"tags": ["Appointments"], "summary": "Appointments: apply filters", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentFilter"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/filters/clear": {"post": {"tags": ["Appointments"], "summary": "Appointments: clear filters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/detail/close": {"post": {"tags": ["Appointments"], "summary": "Appointments: close detail", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/export": {"get": {"tags": ["Appointments"], "summary": "Appointments: export displayed page", "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "format", "in": "query", "type": "string", "required": false, "description": "csv, pdf or xlsx"}], "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive": {"get": {"tags": ["Appointments"], "summary": "Archive", "produces": ["application/json", "text/html"], "parameters": [{"name": "page", "in": "query", "type": "integer", "required": false, "description": "Page number"}, {"name": "dir", "in": "query", "type": "string", "required": false, "description": "Relative step (next|prev)"}, {"name": "refresh", "in": "query", "type": "boolean", "required": false, "description": "Reload the current page"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive/{id}": {"get": {"tags": ["Appointments"], "summary": "Archive: detail", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive/filters": {"post": {"tags": ["Appointments"], "summary": "Archive: apply filters", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentFilter"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive/filters/clear": {"post": {"tags": ["Appointments"], "summary": "Archive: clear filters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive/detail/close": {"post": {"tags": ["Appointments"], "summary": "Archive: close detail", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/archive/export": {"get": {"tags": ["Appointments"], "summary": "Archive: export displayed page", "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "format", "in": "query", "type": "string", "required": false, "description": "csv, pdf or xlsx"}], "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments": {"get": {"tags": ["Appointments"], "summary": "My appointments", "produces": ["application/json", "text/html"], "parameters": [{"name": "page", "in": "query", "type": "integer", "required": false, "description": "Page number"}, {"name": "dir", "in": "query", "type": "string", "required": false, "description": "Relative step (next|prev)"}, {"name": "refresh", "in": "query", "type": "boolean", "required": false, "description": "Reload the current page"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments/{id}": {"get": {"tags": ["Appointments"], "summary": "My appointments: detail", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments/filters": {"post": {"tags": ["Appointments"], "summary": "My appointments: apply filters", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentFilter"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments/filters/clear": {"post": {"tags": ["Appointments"], "summary": "My appointments: clear filters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments/detail/close": {"post": {"tags": ["Appointments"], "summary": "My appointments: close detail", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/appointments/export": {"get": {"tags": ["Appointments"], "summary": "My appointments: export displayed page", "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "format", "in": "query", "type": "string", "required": false, "description": "csv, pdf or xlsx"}], "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive": {"get": {"tags": ["Appointments"], "summary": "My archive", "produces": ["application/json", "text/html"], "parameters": [{"name": "page", "in": "query", "type": "integer", "required": false, "description": "Page number"}, {"name": "dir", "in": "query", "type": "string", "required": false, "description": "Relative step (next|prev)"}, {"name": "refresh", "in": "query", "type": "boolean", "required": false, "description": "Reload the current page"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive/{id}": {"get": {"tags": ["Appointments"], "summary": "My archive: detail", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive/filters": {"post": {"tags": ["Appointments"], "summary": "My archive: apply filters", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentFilter"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive/filters/clear": {"post": {"tags": ["Appointments"], "summary": "My archive: clear filters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive/detail/close": {"post": {"tags": ["Appointments"], "summary": "My archive: close detail", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/archive/export": {"get": {"tags": ["Appointments"], "summary": "My archive: export displayed page", "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "format", "in": "query", "type": "string", "required": false, "description": "csv, pdf or xlsx"}], "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today": {"get": {"tags": ["Appointments"], "summary": "Today's appointments", "produces": ["application/json", "text/html"], "parameters": [{"name": "page", "in": "query", "type": "integer", "required": false, "description": "Page number"}, {"name": "dir", "in": "query", "type": "string", "required": false, "description": "Relative step (next|prev)"}, {"name": "refresh", "in": "query", "type": "boolean", "required": false, "description": "Reload the current page"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today/{id}": {"get": {"tags": ["Appointments"], "summary": "Today's appointments: detail", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today/filters": {"post": {"tags": ["Appointments"], "summary": "Today's appointments: apply filters", "produces": ["application/json", "text/html"], "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AppointmentFilter"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today/filters/clear": {"post": {"tags": ["Appointments"], "summary": "Today's appointments: clear filters", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today/detail/close": {"post": {"tags": ["Appointments"], "summary": "Today's appointments: close detail", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/employee/today/export": {"get": {"tags": ["Appointments"], "summary": "Today's appointments: export displayed page", "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "format", "in": "query", "type": "string", "required": false, "description": "csv, pdf or xlsx"}], "responses": {"200": {"description": "File"}, "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/{id}/status": {"post": {"tags": ["Appointments"], "summary": "Change appointment status", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string", "enum": ["Pending", "Completed", "Rejected"]}}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Row already has a request in flight", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/{id}/assign": {"post": {"tags": ["Appointments"], "summary": "Assign employee", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"employeeId": {"type": "string"}}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Row already has a request in flight", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "502": {"description": "API unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "504": {"description": "API timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/appointments/new": {"post": {"tags": ["Intake"], "summary": "Create appointment", "produces": ["application/json", "text/html"], "consumes": ["multipart/form-data"], "parameters": [{"name": "image", "in": "formData", "type": "file", "required": false, "description": "Patient image"}, {"name": "documents", "in": "formData", "type": "file", "required": false, "description": "Supporting documents"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/employees": {"get": {"tags": ["Directory"], "summary": "Active employees", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/employees/new": {"post": {"tags": ["Intake"], "summary": "Add employee", "produces": ["application/json", "text/html"], "consumes": ["multipart/form-data"], "parameters": [{"name": "image", "in": "formData", "type": "file", "required": false, "description": "Profile image"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/employees/{id}/delete": {"post": {"tags": ["Directory"], "summary": "Delete employee", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/laboratories": {"get": {"tags": ["Directory"], "summary": "Laboratories", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/laboratories/new": {"post": {"tags": ["Intake"], "summary": "Add laboratory", "description": "Registers a laboratory account with its weekly opening times.", "produces": ["application/json", "text/html"], "consumes": ["multipart/form-data", "application/json"], "parameters": [{"name": "image", "in": "formData", "type": "file", "required": false, "description": "Laboratory image"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/laboratories/{id}/delete": {"post": {"tags": ["Directory"], "summary": "Delete laboratory", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/transactions": {"get": {"tags": ["Billing"], "summary": "Transactions with earnings summary", "produces": ["application/json", "text/html"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/admin/transactions/{id}/status": {"post": {"tags": ["Billing"], "summary": "Update transaction status", "produces": ["application/json", "text/html"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true, "description": "Record ID"}, {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string", "enum": ["Completed", "Pending", "Denied"]}}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Missing or rejected credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Row already has a request in flight", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "422": {"description": "Rejected by the API", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}}
    },
    "definitions": {
        "SignInRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "ChangePasswordRequest": {"type": "object", "required": ["oldPassword", "newPassword"], "properties": {"oldPassword": {"type": "string"}, "newPassword": {"type": "string"}}},
        "AppointmentFilter": {"type": "object", "properties": {"status": {"type": "string", "enum": ["Pending", "Completed", "Rejected"]}, "priorityLevel": {"type": "string", "enum": ["Urgent", "High", "Medium", "Low"]}, "labortary": {"type": "string"}, "employeeId": {"type": "string"}, "dateAndTime": {"type": "string", "format": "date"}, "assigned": {"type": "string", "enum": ["True", "False"]}, "tracking": {"type": "string", "enum": ["True", "False"]}, "sortFields": {"type": "string", "enum": ["createdAt", "patientName"]}, "sortOrder": {"type": "integer", "enum": [-1, 1]}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "total_pages": {"type": "integer"}, "has_prev": {"type": "boolean"}, "has_next": {"type": "boolean"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}, "retryable": {"type": "boolean"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
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
