package entity

import "time"

// Admin usuario del panel de administración. No se auto-registra: se crea con
// el seeder (cmd/seed) o manualmente en la DB.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
