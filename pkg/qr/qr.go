// Package qr genera el código QR de identidad que se imprime en sitio y en
// los certificados: un JSON {id, type, name} codificado como imagen PNG.
package qr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const imageSize = 256 // píxeles por lado

// Payload contenido del QR de identidad.
type Payload struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "customer"
	Name string `json:"name"`
}

// Encode serializa el payload como JSON y devuelve la imagen PNG del QR.
func Encode(p Payload) ([]byte, error) {
	if p.ID == "" || p.Name == "" {
		return nil, fmt.Errorf("qr: id y name son requeridos")
	}
	content, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("qr: serializar payload: %w", err)
	}
	code, err := qr.Encode(string(content), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	code, err = barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return nil, fmt.Errorf("qr: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("qr: png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL devuelve el QR como data URL (data:image/png;base64,...) lista para
// persistir en la columna qr_code_url o incrustar en una vista.
func DataURL(p Payload) (string, error) {
	img, err := Encode(p)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}
