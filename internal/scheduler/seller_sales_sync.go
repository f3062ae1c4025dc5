package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository"
	"github.com/vfg2006/sales-manager-api/internal/config"
)

// SellerSalesSyncConfig representa a configuração do agendador de totais por vendedor
type SellerSalesSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SellerSalesSyncService mantém a coluna salespersons.sales igual à soma das vendas de cada vendedor
type SellerSalesSyncService struct {
	scheduler           *gocron.Scheduler
	config              SellerSalesSyncConfig
	sellerRepo          repository.SalespersonRepository
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncUpdated     int64
	lastSyncError       string
}

func NewSellerSalesSyncService(
	sellerRepo repository.SalespersonRepository,
	appConfig *config.Config,
) *SellerSalesSyncService {
	syncConfig := SellerSalesSyncConfig{
		CronSchedule: appConfig.SellerSalesSync.CronSchedule,
		SyncEnabled:  appConfig.SellerSalesSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de vendas por vendedor carregada")

	return &SellerSalesSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		sellerRepo: sellerRepo,
		ctx:        context.Background(),
	}
}

// Start inicia o agendador
func (s *SellerSalesSyncService) Start(ctx context.Context) error {
	s.ctx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de vendas por vendedor desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de vendas por vendedor")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSellerSales(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vendas por vendedor: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de vendas por vendedor")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSellerSales recalcula o total de vendas de todos os vendedores
func (s *SellerSalesSyncService) syncSellerSales(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendas por vendedor já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	updated, err := s.sellerRepo.RecalculateSales(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("Erro ao recalcular vendas dos vendedores")
		return
	}

	s.lastSyncError = ""
	s.lastSyncUpdated = updated
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"sellers":  updated,
	}).Info("Sincronização de vendas por vendedor concluída")
}

// TriggerManualSync dispara a sincronização fora do agendamento
func (s *SellerSalesSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendas por vendedor já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de vendas por vendedor")
	go s.syncSellerSales(s.ctx)
}

// GetStatus retorna o status atual da sincronização
func (s *SellerSalesSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_updated":      s.lastSyncUpdated,
		"last_sync_error":        s.lastSyncError,
	}
}
