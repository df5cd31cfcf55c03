package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/invoicehub/backend/internal/domain/settings"
	"github.com/invoicehub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConfigCache caches the derived configuration between reads. Writes to the
// configuration table must invalidate it.
type ConfigCache interface {
	Get(ctx context.Context) (*ConfigResponse, bool)
	Set(ctx context.Context, cfg *ConfigResponse)
	Invalidate(ctx context.Context)
}

// ConfigService exposes the configuration store: typed settings plus the
// running invoice-number counter.
type ConfigService struct {
	configRepo settings.ConfigRepository
	cache      ConfigCache
	logger     *zap.Logger
}

// NewConfigService creates a new ConfigService. The cache is optional.
func NewConfigService(configRepo settings.ConfigRepository, cache ConfigCache, logger *zap.Logger) *ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigService{
		configRepo: configRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GetConfig loads all configuration rows in one query and derives the typed
// settings and the currently formatted invoice number. Missing individual
// fields degrade to empty strings; an entirely empty table is a
// configuration error.
func (s *ConfigService) GetConfig(ctx context.Context) (*ConfigResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	entries, err := s.configRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	typed, err := settings.BuildSettings(entries)
	if err != nil {
		return nil, err
	}

	response := &ConfigResponse{Settings: *typed}
	for _, e := range entries {
		if e.Title != settings.TitleInvoiceRunningNumber {
			continue
		}
		n, err := e.RunningNumber()
		if err != nil {
			return nil, err
		}
		response.CurrentInvoiceNumber = settings.FormatInvoiceNumber(
			strconv.FormatInt(n, 10), typed.InvoiceNumberFormat)
	}

	if s.cache != nil {
		s.cache.Set(ctx, response)
	}
	return response, nil
}

// AllocateInvoiceNumber reserves the next invoice number. The increment is a
// single serialized repository operation, so two concurrent allocations
// always yield distinct numbers. Fails with a configuration error when the
// running-number row is absent or unparseable.
func (s *ConfigService) AllocateInvoiceNumber(ctx context.Context) (*AllocatedNumber, error) {
	format, err := s.invoiceNumberFormat(ctx)
	if err != nil {
		return nil, err
	}

	value, err := s.configRepo.AllocateRunningNumber(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CONFIGURATION_ERROR",
				"Running number entry is not configured")
		}
		return nil, fmt.Errorf("failed to allocate running number: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	raw := strconv.FormatInt(value, 10)
	allocated := &AllocatedNumber{
		RawValue:      raw,
		InvoiceNumber: settings.FormatInvoiceNumber(raw, format),
	}

	s.logger.Info("invoice number allocated",
		zap.String("invoice_number", allocated.InvoiceNumber),
	)

	return allocated, nil
}

// UpdateEntry writes a single configuration entry, creating it when absent
func (s *ConfigService) UpdateEntry(ctx context.Context, title, value string) error {
	if title == settings.TitleInvoiceRunningNumber {
		// The counter is only advanced through AllocateInvoiceNumber, but an
		// operator may still reset it; the value must stay numeric.
		if n, err := strconv.ParseInt(value, 10, 64); err != nil || n < 0 {
			return shared.NewDomainError("CONFIGURATION_ERROR",
				"Running number must be a non-negative integer")
		}
	}

	entry, err := s.configRepo.FindByTitle(ctx, title)
	switch {
	case err == nil:
		entry.UpdateValue(value)
	case errors.Is(err, shared.ErrNotFound):
		entry, err = settings.NewConfigEntry(title, value)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("failed to load configuration entry: %w", err)
	}

	if err := s.configRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save configuration entry: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

func (s *ConfigService) invoiceNumberFormat(ctx context.Context) (string, error) {
	entry, err := s.configRepo.FindByTitle(ctx, settings.TitleInvoiceNumberFormat)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return settings.DefaultInvoiceNumberFormat, nil
		}
		return "", fmt.Errorf("failed to load invoice number format: %w", err)
	}
	if entry.Value == "" {
		return settings.DefaultInvoiceNumberFormat, nil
	}
	return entry.Value, nil
}
