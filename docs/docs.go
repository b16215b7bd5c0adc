// Package docs is a hand-authored stand-in for the file `swag init` would
// normally generate from the handlers' swaggo annotations. It registers
// the minimal OpenAPI document gin-swagger needs to serve /swagger/*any.
package docs

import (
	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger metadata, matching the shape
// swag-generated docs packages expose so main.go can set BasePath at
// startup without depending on generated code.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "WAV Steganography API",
	Description:      "Embeds and extracts payloads in RIFF/WAVE carriers via LSB steganography, optional Hamming(12,8) error correction and optional AES-256-GCM encryption.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{escape .Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health Check",
                "responses": {"200": {"description": "Service is healthy"}}
            }
        },
        "/capacity": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Calculate WAV Embedding Capacity",
                "consumes": ["multipart/form-data"],
                "responses": {"200": {"description": "Capacity calculated"}}
            }
        },
        "/embed": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Embed a secret file into a WAV carrier",
                "consumes": ["multipart/form-data"],
                "responses": {"200": {"description": "Stego WAV file"}}
            }
        },
        "/extract": {
            "post": {
                "tags": ["Steganography"],
                "summary": "Extract a secret file from a stego WAV carrier",
                "consumes": ["multipart/form-data"],
                "responses": {"200": {"description": "Extracted secret file"}}
            }
        }
    }
}`
