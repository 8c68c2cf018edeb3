// facturactl agrupa las tareas de operación fuera del servidor HTTP:
// migraciones, alta del administrador, exportación y purga de documentos.
//
// Uso: go run ./cmd/facturactl <comando> [flags]
// Lee .env del directorio actual si existe.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Sin .env se usan las variables de entorno del proceso.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
