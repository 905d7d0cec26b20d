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
        "/api/v1/spots": {
            "get": {
                "description": "Возвращает страницу спотов с фильтрами по категории, округу, типу и оплате, а также полнотекстовым поиском",
                "produces": ["application/json"],
                "tags": ["Spots"],
                "summary": "Список спотов",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Номер страницы (с 1)", "name": "page", "in": "query"},
                    {"type": "integer", "default": 8, "description": "Размер страницы (1-100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Поисковый запрос, например 'piscine 16e'", "name": "search", "in": "query"},
                    {"type": "string", "description": "Категории через запятую (activities, green_spaces, water_fountains)", "name": "categories", "in": "query"},
                    {"type": "string", "description": "Округа через запятую, например 75015", "name": "districts", "in": "query"},
                    {"type": "string", "description": "Типы через запятую", "name": "types", "in": "query"},
                    {"type": "string", "description": "Оплата (payant, gratuit)", "name": "paid", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/spots/filters": {
            "get": {
                "description": "Возвращает категории, округа, типы и варианты оплаты, присутствующие в данных",
                "produces": ["application/json"],
                "tags": ["Spots"],
                "summary": "Варианты фильтров",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/spots/{id}": {
            "get": {
                "description": "Ищет спот в агрегированной коллекции",
                "produces": ["application/json"],
                "tags": ["Spots"],
                "summary": "Спот по идентификатору",
                "parameters": [
                    {"type": "string", "description": "Идентификатор спота", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/datasets/{dataset}/records/{id}": {
            "get": {
                "description": "Загружает запись напрямую из источника открытых данных, минуя агрегированную коллекцию",
                "produces": ["application/json"],
                "tags": ["Spots"],
                "summary": "Запись источника",
                "parameters": [
                    {"type": "string", "description": "Идентификатор источника", "name": "dataset", "in": "path", "required": true},
                    {"type": "string", "description": "Идентификатор записи", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/cache/clear": {
            "post": {
                "description": "Сбрасывает кеш спотов и вариантов фильтров; следующий запрос заново загрузит источники",
                "produces": ["application/json"],
                "tags": ["Cache"],
                "summary": "Сброс кеша",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "time_ms": {"type": "number"},
                "total": {"type": "integer"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Cool Spots API",
	Description:      "Paris cool spots aggregated from open data: activities, green spaces and drinking fountains.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
