package infra

import (
	"fmt"

	"catalogo/internal/repository"
)

// OpenStore constructs the repository.Store selected by driver: "postgres",
// "sqlite" or "file". dsn is ignored for the file store and dataFile for SQL.
func OpenStore(driver, dsn, dataFile string) (repository.Store, error) {
	switch driver {
	case DriverFile:
		if dataFile == "" {
			return nil, fmt.Errorf("DATA_FILE requerido para el driver file")
		}
		return repository.NewFileStore(dataFile)
	case DriverPostgres, DriverSQLite:
		db, err := NewDatabase(driver, dsn)
		if err != nil {
			return nil, err
		}
		return repository.NewStore(db), nil
	default:
		return nil, fmt.Errorf("driver de base de datos desconocido: %q", driver)
	}
}
