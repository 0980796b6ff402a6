// migrate aplica en orden los archivos SQL de migrations/ contra la base
// configurada (DATABASE_URL o DB_*).
//
// Uso: go run ./cmd/migrate [directorio]
// Por defecto usa ./migrations. Cada archivo corre en su propia transacción.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/pkg/config"
)

func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.DB.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar migraciones: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no hay archivos .sql en %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "leer %s: %v\n", f, err)
			os.Exit(1)
		}
		if err := apply(ctx, conn, string(sql)); err != nil {
			fmt.Fprintf(os.Stderr, "aplicar %s: %v\n", f, err)
			os.Exit(1)
		}
		fmt.Printf("aplicada %s\n", filepath.Base(f))
	}
}

func apply(ctx context.Context, conn *pgx.Conn, sql string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
