package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the menu API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>menu-service Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the menu API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "menu-service", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "MenuItem": {
        "type": "object",
        "required": ["menuName", "menuPrice", "menuCategory"],
        "properties": {
          "id": { "type": "string", "readOnly": true },
          "menuName": { "type": "string", "minLength": 1 },
          "menuPrice": { "type": "number", "exclusiveMinimum": true, "minimum": 0 },
          "menuCategory": { "type": "string", "minLength": 1 },
          "menuAvailable": { "type": "boolean" }
        }
      },
      "MenuPatch": {
        "type": "object",
        "minProperties": 1,
        "properties": {
          "menuName": { "type": "string", "minLength": 1 },
          "menuPrice": { "type": "number", "exclusiveMinimum": true, "minimum": 0 },
          "menuCategory": { "type": "string", "minLength": 1 },
          "menuAvailable": { "type": "boolean" }
        }
      },
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } }
    }
  },
  "paths": {
    "/api/menu": {
      "get": {
        "summary": "List all menu items",
        "responses": {
          "200": { "description": "all items, [] when empty", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/MenuItem" } } } } },
          "500": { "description": "store failure", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } }
        }
      },
      "post": {
        "summary": "Create a menu item",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/MenuItem" } } } },
        "responses": {
          "201": { "description": "created item with generated id", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/MenuItem" } } } },
          "400": { "description": "validation failure", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } },
          "500": { "description": "store failure" }
        }
      }
    },
    "/api/menu/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "put": {
        "summary": "Update the submitted fields of a menu item",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/MenuPatch" } } } },
        "responses": {
          "200": { "description": "id plus the submitted fields" },
          "400": { "description": "validation failure" },
          "404": { "description": "no item with this id" },
          "500": { "description": "store failure" }
        }
      },
      "delete": {
        "summary": "Delete a menu item (idempotent)",
        "responses": {
          "200": { "description": "confirmation, also for unknown ids", "content": { "application/json": { "schema": { "type": "object", "properties": { "message": { "type": "string" }, "id": { "type": "string" } } } } } },
          "500": { "description": "store failure" }
        }
      }
    },
    "/api/menu/snapshots": {
      "post": { "summary": "Export the menu to object storage", "responses": { "201": { "description": "snapshot stored" }, "500": { "description": "export failed" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "store unreachable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
