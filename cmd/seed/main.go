// seed crea el usuario admin inicial en la base de datos.
//
// Uso: go run ./cmd/seed [email] [password] [nombre]
// Por defecto crea admin@aixosfire.com con una password de desarrollo.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/infrastructure/postgres"
	"github.com/sawaid25/aixosfire-api/pkg/config"
)

func main() {
	email := "admin@aixosfire.com"
	password := "cambiar-en-produccion"
	name := "Administrador"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	admins := postgres.NewAdminRepository(pool)
	if _, err := admins.GetByEmail(email); err == nil {
		fmt.Printf("El admin %s ya existe, nada que hacer\n", email)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Consultar admin: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de password: %v\n", err)
		os.Exit(1)
	}

	admin := &entity.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now(),
	}
	if err := admins.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin %s creado (id %s)\n", email, admin.ID)
}
