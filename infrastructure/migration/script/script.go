package main

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/infrastructure/migration"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// SEED_ADMIN_EMAIL e SEED_ADMIN_PASSWORD criam o primeiro administrador;
// SEED_CATALOG=true carrega o catálogo inicial.
const (
	seedAdminEmailKey    = "SEED_ADMIN_EMAIL"
	seedAdminPasswordKey = "SEED_ADMIN_PASSWORD"
	seedCatalogKey       = "SEED_CATALOG"
)

type CatalogEntry struct {
	Name        string
	Code        string
	Price       string
	ProductType string
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("users").
		Columns("name", "email", "password_hash", "role").
		Values("Administrador", strings.ToLower(strings.TrimSpace(email)), string(hash), domain.RoleAdmin).
		Suffix("ON CONFLICT (email) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		logrus.WithField("email", email).Info("Administrador já existe, nada a fazer")
		return nil
	}

	logrus.WithField("email", email).Info("Administrador criado")
	return nil
}

func insertCatalog(ctx context.Context, tx *sql.Tx, table string, entries []CatalogEntry) error {
	logrus.Infof("Iniciando inserção de %d itens em %s...", len(entries), table)
	startTime := time.Now()

	builder := squirrel.
		Insert(table).
		Columns("name", "code", "price", "product_type").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range entries {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			logrus.WithError(err).Warnf("Preço inválido para %s, item ignorado", e.Name)
			continue
		}
		builder = builder.Values(e.Name, e.Code, price, e.ProductType)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	logrus.Infof("Inserção em %s concluída em %v", table, time.Since(startTime))
	return nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("ERRO ao aplicar schema")
	}

	email, password := viper.GetString(seedAdminEmailKey), viper.GetString(seedAdminPasswordKey)
	seedCatalog := viper.GetBool(seedCatalogKey)

	products := []CatalogEntry{
		{"Armação acetato", "ARM-001", "180.00", "armacao"},
		{"Lente monofocal", "LEN-001", "120.00", "lente"},
		{"Lente multifocal", "LEN-002", "450.00", "lente"},
		{"Óculos de sol", "SOL-001", "250.00", "solar"},
	}
	services := []CatalogEntry{
		{"Ajuste de armação", "SRV-001", "15.00", "manutencao"},
		{"Montagem de lentes", "SRV-002", "40.00", "montagem"},
	}

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if email != "" && password != "" {
			if err := seedAdmin(ctx, tx, email, password); err != nil {
				return err
			}
		}

		if !seedCatalog {
			return nil
		}

		if err := insertCatalog(ctx, tx, "products", products); err != nil {
			return err
		}
		return insertCatalog(ctx, tx, "services", services)
	})
	if err != nil {
		logrus.WithError(err).Fatal("ERRO na carga inicial, transação revertida")
	}

	logrus.Info("Migração concluída")
}
