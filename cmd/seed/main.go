// cmd/seed — applies migrations and loads a catalog from a JSON file.
// Uso:
//
//	go run ./cmd/seed migrate
//	go run ./cmd/seed seed --file cmd/seed/testdata/catalogo.json
package main

import (
	"fmt"
	"os"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Herramientas de base de datos del catálogo",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.DBDriver, "driver", cfg.DBDriver, "postgres | sqlite | file")
	root.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "DSN de la base de datos")
	root.PersistentFlags().StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "ruta del archivo JSON (driver file)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.DBDriver == infra.DriverFile {
				return fmt.Errorf("el driver file no usa migraciones")
			}
			db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Migraciones aplicadas (%s)\n", cfg.DBDriver)
			return nil
		},
	})

	var file string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga categorías y productos desde un archivo JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := leerCatalogo(file)
			if err != nil {
				return err
			}
			store, err := infra.OpenStore(cfg.DBDriver, cfg.DatabaseURL, cfg.DataFile)
			if err != nil {
				return err
			}
			res := sembrar(cmd.Context(), store, cat, cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d categorías y %d productos creados, %d errores\n",
				res.Categorias, res.Productos, res.Errores)
			if res.Errores > 0 {
				return fmt.Errorf("%d elementos no se pudieron cargar", res.Errores)
			}
			return nil
		},
	}
	seedCmd.Flags().StringVarP(&file, "file", "f", "", "archivo JSON con {categorias, productos}")
	_ = seedCmd.MarkFlagRequired("file")
	root.AddCommand(seedCmd)

	return root
}
