package visit

import "context"

// DraftStore persistencia de borradores del wizard (Redis con TTL).
type DraftStore interface {
	Save(ctx context.Context, d *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

// SubmitLock candado de vuelo único por borrador: Acquire devuelve false si ya
// hay un envío en curso para ese borrador.
type SubmitLock interface {
	Acquire(ctx context.Context, draftID string) (bool, error)
	Release(ctx context.Context, draftID string) error
}

// MediaStore almacenamiento de adjuntos (foto, nota de voz) previo al envío.
type MediaStore interface {
	Save(ctx context.Context, kind, name string, data []byte) (string, error)
	Open(ctx context.Context, key string) ([]byte, string, error)
}
