// seed crea el usuario administrador inicial y, opcionalmente, importa socios
// desde un CSV (nombre;apellido;cedula;telefono;email;direccion;fecha_ingreso).
//
// Uso:
//
//	go run ./cmd/seed -email admin@coop.org -password 'cambiar123'
//	go run ./cmd/seed -socios socios.csv -encoding latin1
//
// Los exportes de hojas de cálculo suelen venir en ISO-8859-1; -encoding latin1 los convierte a UTF-8.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/usecase"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/infrastructure/postgres"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/config"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

func main() {
	var (
		email     = flag.String("email", "", "email del administrador")
		password  = flag.String("password", "", "password del administrador (mínimo 8 caracteres)")
		nombre    = flag.String("nombre", "Administrador", "nombre del administrador")
		sociosCSV = flag.String("socios", "", "CSV de socios a importar")
		encoding  = flag.String("encoding", "utf8", "codificación del CSV: utf8 | latin1")
		migrate   = flag.Bool("migrate", true, "aplicar migraciones antes de sembrar")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, AppName: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	if *email != "" {
		users := usecase.NewUsuarioUseCase(postgres.NewUsuarioRepository(pool))
		u, err := users.Create(ctx, dto.UsuarioRequest{
			Nombre:   *nombre,
			Email:    *email,
			Password: *password,
			Rol:      entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Str("email", *email).Msg("el administrador ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear administrador")
		default:
			log.Info().Int64("id_usuario", u.IDUsuario).Str("email", u.Email).Msg("administrador creado")
		}
	}

	if *sociosCSV != "" {
		n, skipped, err := importSocios(ctx, usecase.NewSocioUseCase(postgres.NewSocioRepository(pool)), *sociosCSV, *encoding, log)
		if err != nil {
			log.Fatal().Err(err).Msg("importar socios")
		}
		log.Info().Int("importados", n).Int("omitidos", skipped).Msg("importación de socios terminada")
	}
}

type socioCreator interface {
	Create(ctx context.Context, in dto.SocioRequest) (*dto.SocioResponse, error)
}

func importSocios(ctx context.Context, socios socioCreator, path, enc string, log *logger.Logger) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(enc, "latin1") || strings.EqualFold(enc, "iso-8859-1") {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	imported, skipped, line := 0, 0, 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("línea %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue // encabezado
		}
		in := socioFromRecord(rec)
		if _, err := socios.Create(ctx, in); err != nil {
			skipped++
			log.Warn().Err(err).Int("linea", line).Str("cedula", in.Cedula).Msg("socio omitido")
			continue
		}
		imported++
	}
	return imported, skipped, nil
}

func socioFromRecord(rec []string) dto.SocioRequest {
	col := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	return dto.SocioRequest{
		Nombre:       col(0),
		Apellido:     col(1),
		Cedula:       col(2),
		Telefono:     col(3),
		Email:        col(4),
		Direccion:    col(5),
		FechaIngreso: col(6),
	}
}
