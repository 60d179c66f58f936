// Package docs documentación OpenAPI servida en /swagger.
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
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar usuario", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/me": {"get": {"tags": ["auth"], "security": [{"Bearer": []}], "summary": "Usuario autenticado", "responses": {"200": {"description": "OK"}}}},
        "/api/restaurants": {
            "get": {"tags": ["restaurants"], "security": [{"Bearer": []}], "summary": "Listar restaurantes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["restaurants"], "security": [{"Bearer": []}], "summary": "Crear restaurante", "responses": {"201": {"description": "Created"}}}
        },
        "/api/restaurants/{id}": {"get": {"tags": ["restaurants"], "security": [{"Bearer": []}], "summary": "Obtener restaurante", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/warehouses": {
            "get": {"tags": ["warehouses"], "security": [{"Bearer": []}], "summary": "Listar almacenes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["warehouses"], "security": [{"Bearer": []}], "summary": "Crear almacén", "responses": {"201": {"description": "Created"}}}
        },
        "/api/warehouses/{id}": {
            "get": {"tags": ["warehouses"], "security": [{"Bearer": []}], "summary": "Obtener almacén", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["warehouses"], "security": [{"Bearer": []}], "summary": "Actualizar almacén", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["warehouses"], "security": [{"Bearer": []}], "summary": "Eliminar almacén", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/api/categories": {
            "get": {"tags": ["categories"], "security": [{"Bearer": []}], "summary": "Listar categorías", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["categories"], "security": [{"Bearer": []}], "summary": "Crear categoría", "responses": {"201": {"description": "Created"}}}
        },
        "/api/ingredients": {
            "get": {"tags": ["ingredients"], "security": [{"Bearer": []}], "summary": "Listar ingredientes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ingredients"], "security": [{"Bearer": []}], "summary": "Crear ingrediente", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/ingredients/{id}": {
            "get": {"tags": ["ingredients"], "security": [{"Bearer": []}], "summary": "Obtener ingrediente", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["ingredients"], "security": [{"Bearer": []}], "summary": "Actualizar ingrediente", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["ingredients"], "security": [{"Bearer": []}], "summary": "Dar de baja un ingrediente", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/products": {
            "get": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Listar productos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Crear producto", "responses": {"201": {"description": "Created"}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Obtener producto", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Actualizar producto", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Eliminar producto", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/api/products/{id}/recipe": {"put": {"tags": ["products"], "security": [{"Bearer": []}], "summary": "Reemplazar receta", "responses": {"200": {"description": "OK"}}}},
        "/api/stock/overview": {"get": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Vista general del stock", "responses": {"200": {"description": "OK"}}}},
        "/api/stock/replenishment": {"get": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Lista de reposición", "responses": {"200": {"description": "OK"}}}},
        "/api/stock/{ingredientId}/entries": {"post": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Registrar entrada de stock", "responses": {"201": {"description": "Created"}}}},
        "/api/stock/{ingredientId}/losses": {"post": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Registrar pérdida", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/stock/{ingredientId}/minimum": {"put": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Ajustar stock mínimo", "responses": {"200": {"description": "OK"}}}},
        "/api/stock/{ingredientId}/movements": {"get": {"tags": ["stock"], "security": [{"Bearer": []}], "summary": "Historial de movimientos", "responses": {"200": {"description": "OK"}}}},
        "/api/production": {"post": {"tags": ["production"], "security": [{"Bearer": []}], "summary": "Registrar producción", "responses": {"201": {"description": "Created"}, "400": {"description": "INSUFFICIENT_STOCK"}, "409": {"description": "STOCK_CONFLICT"}}}},
        "/api/orders": {
            "get": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Listar pedidos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Crear pedido", "responses": {"201": {"description": "Created"}, "400": {"description": "INSUFFICIENT_STOCK"}}}
        },
        "/api/orders/{id}": {"get": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Obtener pedido", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/orders/{id}/status": {"patch": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Cambiar estado del pedido", "responses": {"200": {"description": "OK"}}}},
        "/api/orders/{id}/cancel": {"post": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Cancelar pedido", "responses": {"200": {"description": "OK"}, "400": {"description": "ORDER_FINALIZED / ORDER_CANCELLED"}}}},
        "/api/orders/{id}/complete": {"post": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Finalizar pedido", "responses": {"200": {"description": "OK"}, "400": {"description": "INSUFFICIENT_STOCK / ORDER_FINALIZED"}, "409": {"description": "STOCK_CONFLICT"}}}},
        "/api/orders/{id}/ticket": {"get": {"tags": ["orders"], "security": [{"Bearer": []}], "summary": "Comanda en PDF", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/api/notifications": {"get": {"tags": ["notifications"], "security": [{"Bearer": []}], "summary": "Listar notificaciones", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/read-all": {"patch": {"tags": ["notifications"], "security": [{"Bearer": []}], "summary": "Marcar todas como leídas", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/read": {"delete": {"tags": ["notifications"], "security": [{"Bearer": []}], "summary": "Eliminar las leídas", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/{id}/read": {"patch": {"tags": ["notifications"], "security": [{"Bearer": []}], "summary": "Marcar como leída", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/{id}": {"delete": {"tags": ["notifications"], "security": [{"Bearer": []}], "summary": "Eliminar notificación", "responses": {"204": {"description": "No Content"}}}}
    }
}`

// SwaggerInfo metadatos editables en tiempo de ejecución (host, versión).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cafeterías API",
	Description:      "Inventario multi-restaurante: recetas, stock, producción y pedidos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
