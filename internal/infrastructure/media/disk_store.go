// Package media implementa el almacenamiento en disco de los adjuntos de
// visita (fotos y notas de voz) capturados durante el wizard.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/pkg/config"
)

var _ visit.MediaStore = (*DiskStore)(nil)

// Tipos de adjunto aceptados.
const (
	KindPhoto     = "photo"
	KindVoiceNote = "voice"
)

// DiskStore guarda adjuntos bajo un directorio raíz, particionados por tipo
// y fecha. La clave devuelta es la ruta relativa dentro del directorio.
type DiskStore struct {
	root    string
	maxSize int64
}

// NewDiskStore crea el almacén y asegura el directorio raíz.
func NewDiskStore(cfg config.MediaConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creando directorio de media: %w", err)
	}
	return &DiskStore{
		root:    cfg.Dir,
		maxSize: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}, nil
}

// Save persiste un adjunto y devuelve su clave. El nombre original solo
// aporta la extensión; el archivo se renombra con un UUID.
func (s *DiskStore) Save(ctx context.Context, kind, name string, data []byte) (string, error) {
	if kind != KindPhoto && kind != KindVoiceNote {
		return "", fmt.Errorf("%w: tipo de adjunto desconocido: %s", domain.ErrInvalidInput, kind)
	}
	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("%w: el adjunto supera el tamaño máximo permitido", domain.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(name))
	key := filepath.Join(kind, time.Now().UTC().Format("2006/01"), uuid.NewString()+ext)

	path := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creando directorio de adjuntos: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("error guardando adjunto: %w", err)
	}
	return key, nil
}

// Open devuelve el contenido de un adjunto y su tipo MIME aproximado.
func (s *DiskStore) Open(ctx context.Context, key string) ([]byte, string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, "", fmt.Errorf("%w: clave de adjunto inválida", domain.ErrInvalidInput)
	}

	data, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("error leyendo adjunto: %w", err)
	}
	return data, contentTypeFor(clean), nil
}

func contentTypeFor(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".m4a":
		return "audio/mp4"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}
